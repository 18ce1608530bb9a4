package rbac

import "errors"

// Domain errors for scoped permission resolution.
var (
	// ErrPermissionDenied is returned by Require when resolution denies
	// access. The error is deliberately generic: callers must not learn
	// whether the role or the permission was missing.
	ErrPermissionDenied = errors.New("rbac.permission_denied")

	// ErrInvalidScope is returned when the requested scope is malformed,
	// including wildcard object ids in a request.
	ErrInvalidScope = errors.New("rbac.invalid_scope")

	// ErrInvalidPermission is returned when the permission name is empty.
	ErrInvalidPermission = errors.New("rbac.invalid_permission")

	// ErrStoreFailure wraps grant store errors. It is never converted to
	// an allow or deny decision by the resolver.
	ErrStoreFailure = errors.New("rbac.store_failure")
)
