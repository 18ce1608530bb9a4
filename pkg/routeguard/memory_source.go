package routeguard

import "context"

// memorySource is a RuleSource over a static slice, used for tests and
// code-defined rule tables.
type memorySource struct {
	rules []Rule
}

// NewMemorySource creates a rule source from a static rule list. The input
// is copied; rule order is preserved.
func NewMemorySource(rules []Rule) RuleSource {
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &memorySource{rules: copied}
}

// Load returns the rule list.
func (s *memorySource) Load(ctx context.Context) ([]Rule, error) {
	return s.rules, nil
}
