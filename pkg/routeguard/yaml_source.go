package routeguard

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrRuleFileUnreadable is returned when the YAML rule file cannot be read
// or parsed.
var ErrRuleFileUnreadable = errors.New("routeguard.rule_file_unreadable")

// ruleFile is the YAML document shape:
//
//	rules:
//	  - method: GET
//	    path: /api/worlds/:id
//	    permission: world.view
//	    scope_type: world
//	    scope_param: id
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// yamlSource loads the rule table from a YAML file on every Load, so a
// guard rebuilt from the same source picks up edits.
type yamlSource struct {
	path string
}

// NewYAMLSource creates a rule source reading from the given file path.
func NewYAMLSource(path string) RuleSource {
	return &yamlSource{path: path}
}

// Load reads and parses the rule file.
func (s *yamlSource) Load(ctx context.Context) ([]Rule, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrRuleFileUnreadable, err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(ErrRuleFileUnreadable, fmt.Errorf("%s: %w", s.path, err))
	}

	return file.Rules, nil
}
