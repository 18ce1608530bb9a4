package routeguard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/guardkit/pkg/rbac"
	"github.com/dmitrymomot/guardkit/pkg/scope"
)

// DefaultAPIPrefix is the conventional prefix segment stripped during path
// normalization.
const DefaultAPIPrefix = "/api"

// RuleSource provides the declarative rule table.
type RuleSource interface {
	// Load returns all page permission rules.
	Load(ctx context.Context) ([]Rule, error)
}

// compiledRule holds a rule with its precompiled matchers: the pattern as
// authored and, when they differ, the API-prefix-normalized form. Both are
// tried so rules written with or without the prefix behave identically.
type compiledRule struct {
	rule     Rule
	patterns []*pattern
}

// Guard matches incoming requests against the rule table. Patterns are
// compiled once at construction; matching allocates only the capture map.
type Guard struct {
	byMethod  map[string][]compiledRule
	apiPrefix string
}

// GuardOption configures a Guard during construction.
type GuardOption func(*Guard)

// WithAPIPrefix overrides the prefix segment used for path normalization.
// An empty prefix disables normalization.
func WithAPIPrefix(prefix string) GuardOption {
	return func(g *Guard) {
		g.apiPrefix = prefix
	}
}

// NewGuard loads rules from the source and precompiles their patterns.
// Rule order is preserved: the first rule whose pattern matches wins, so
// sources should order rules most-specific first. Overlapping rules are a
// configuration hazard, not a matcher concern.
func NewGuard(ctx context.Context, source RuleSource, opts ...GuardOption) (*Guard, error) {
	g := &Guard{
		byMethod:  make(map[string][]compiledRule),
		apiPrefix: DefaultAPIPrefix,
	}

	for _, opt := range opts {
		opt(g)
	}

	rules, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		cr, err := g.compile(rule)
		if err != nil {
			return nil, errors.Join(ErrInvalidRule, fmt.Errorf("rule %s %s: %w", rule.Method, rule.Path, err))
		}
		method := strings.ToUpper(rule.Method)
		g.byMethod[method] = append(g.byMethod[method], cr)
	}

	return g, nil
}

func (g *Guard) compile(rule Rule) (compiledRule, error) {
	if rule.Permission == "" {
		return compiledRule{}, errors.New("permission is required")
	}
	if rule.ScopeType == "" {
		return compiledRule{}, errors.New("scope type is required")
	}

	p, err := compilePattern(rule.Path)
	if err != nil {
		return compiledRule{}, err
	}
	patterns := []*pattern{p}

	if normalized := stripAPIPrefix(rule.Path, g.apiPrefix); normalized != rule.Path {
		np, err := compilePattern(normalized)
		if err != nil {
			return compiledRule{}, err
		}
		patterns = append(patterns, np)
	}

	return compiledRule{rule: rule, patterns: patterns}, nil
}

// Match finds the first rule covering (method, path) and resolves the
// required permission and scope. A nil match with a nil error means no rule
// covers the request: the caller lets it through, because the rule table is
// an explicit allow-list of protected routes, not a default-deny gate.
//
// A matched rule whose scope_param is not captured by its own pattern
// returns ErrMissingScopeParam; callers must deny rather than fall back to
// a default scope.
func (g *Guard) Match(method, path string) (*Match, error) {
	rules, ok := g.byMethod[strings.ToUpper(method)]
	if !ok {
		return nil, nil
	}

	normalized := stripAPIPrefix(path, g.apiPrefix)

	for _, cr := range rules {
		params, ok := cr.matchPath(normalized)
		if !ok {
			continue
		}

		objectID := scope.GlobalObjectID
		if cr.rule.ScopeParam != "" {
			objectID, ok = params[cr.rule.ScopeParam]
			if !ok {
				return nil, errors.Join(ErrMissingScopeParam,
					fmt.Errorf("rule %s %s: scope_param %q not captured by pattern",
						cr.rule.Method, cr.rule.Path, cr.rule.ScopeParam))
			}
		}

		return &Match{
			Rule:       cr.rule,
			Permission: rbac.Permission(cr.rule.Permission),
			Scope:      scope.New(cr.rule.ScopeType, objectID),
			Params:     params,
		}, nil
	}

	return nil, nil
}

func (cr compiledRule) matchPath(path string) (map[string]string, bool) {
	for _, p := range cr.patterns {
		if params, ok := p.match(path); ok {
			return params, true
		}
	}
	return nil, false
}
