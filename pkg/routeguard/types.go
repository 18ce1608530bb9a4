package routeguard

import (
	"github.com/dmitrymomot/guardkit/pkg/rbac"
	"github.com/dmitrymomot/guardkit/pkg/scope"
)

// Rule declaratively maps an HTTP route to the permission and scope it
// requires. Path patterns use ":name" tokens for single-segment parameters;
// everything else matches literally.
//
// ScopeParam optionally names the path parameter supplying the scope's
// object id. When empty, the object id defaults to "global". A ScopeParam
// that names a parameter absent from the pattern is a configuration defect
// and fails closed at match time.
type Rule struct {
	Method     string `yaml:"method" json:"method"`
	Path       string `yaml:"path" json:"path"`
	Permission string `yaml:"permission" json:"permission"`
	ScopeType  string `yaml:"scope_type" json:"scope_type"`
	ScopeParam string `yaml:"scope_param,omitempty" json:"scope_param,omitempty"`
}

// Match is the outcome of matching a request against the rule table: the
// winning rule, the permission and fully resolved scope to check, and the
// captured path parameters.
type Match struct {
	Rule       Rule
	Permission rbac.Permission
	Scope      scope.Scope
	Params     map[string]string
}
