package rbac

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/guardkit/pkg/scope"
)

// Permission is a named capability, e.g. "world.edit". Permissions are
// unique by name and immutable once referenced by grants.
type Permission string

// AccessLevel qualifies a role-permission grant. AccessNone is a revoke
// marker: the row stays in place but never satisfies a check.
type AccessLevel string

const (
	AccessNone     AccessLevel = "none"
	AccessRead     AccessLevel = "read"
	AccessWrite    AccessLevel = "write"
	AccessModerate AccessLevel = "moderate"
	AccessAdmin    AccessLevel = "admin"
)

// Valid reports whether the level is one of the known values.
func (l AccessLevel) Valid() bool {
	switch l {
	case AccessNone, AccessRead, AccessWrite, AccessModerate, AccessAdmin:
		return true
	}
	return false
}

// Grants reports whether the level contributes to an allow decision.
func (l AccessLevel) Grants() bool {
	return l.Valid() && l != AccessNone
}

// UserRole assigns a role to a user within a scope. At most one assignment
// exists per (user, role, scope) tuple; stores upsert on that key.
type UserRole struct {
	UserID uuid.UUID
	RoleID uuid.UUID
	Scope  scope.Scope
}

// RolePermission grants a permission to a role within a scope, annotated
// with an access level. Each row is evaluated independently by scope.
type RolePermission struct {
	RoleID      uuid.UUID
	Permission  Permission
	Scope       scope.Scope
	AccessLevel AccessLevel
}
