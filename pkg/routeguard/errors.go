package routeguard

import "errors"

// Domain errors for route guarding.
var (
	// ErrUnauthenticated is returned when a protected route is hit without
	// a resolvable identity. Distinct from permission denial.
	ErrUnauthenticated = errors.New("routeguard.unauthenticated")

	// ErrForbidden is returned when the identity resolved but permission
	// resolution denied access. Deliberately generic: it carries no hint
	// of which role, permission, or scope was missing.
	ErrForbidden = errors.New("routeguard.forbidden")

	// ErrMissingScopeParam is returned when a rule's scope_param names a
	// path parameter the pattern does not capture. The guard fails closed.
	ErrMissingScopeParam = errors.New("routeguard.missing_scope_param")

	// ErrInvalidRule is returned when a rule cannot be compiled.
	ErrInvalidRule = errors.New("routeguard.invalid_rule")

	// ErrResolverFailure wraps permission resolver errors surfaced during
	// request handling. Never converted to an allow.
	ErrResolverFailure = errors.New("routeguard.resolver_failure")
)
