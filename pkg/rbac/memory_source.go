package rbac

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/guardkit/pkg/scope"
)

// MemorySource is a thread-safe in-memory GrantSource. It is intended for
// tests and single-process deployments; production setups use the Postgres
// or Mongo sources.
type MemorySource struct {
	mu              sync.RWMutex
	userRoles       []UserRole
	rolePermissions []RolePermission
}

var _ GrantSource = (*MemorySource)(nil)

// NewMemorySource creates an empty in-memory grant source.
func NewMemorySource() *MemorySource {
	return &MemorySource{}
}

// AssignRole grants the user a role within a scope. The assignment upserts
// on the (user, role, scope) tuple, so repeated calls are idempotent.
func (s *MemorySource) AssignRole(userID, roleID uuid.UUID, sc scope.Scope) error {
	if err := sc.ValidateGrant(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ur := range s.userRoles {
		if ur.UserID == userID && ur.RoleID == roleID && ur.Scope == sc {
			return nil
		}
	}
	s.userRoles = append(s.userRoles, UserRole{UserID: userID, RoleID: roleID, Scope: sc})
	return nil
}

// RevokeRole removes the user's role assignment for the given scope.
func (s *MemorySource) RevokeRole(userID, roleID uuid.UUID, sc scope.Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.userRoles[:0]
	for _, ur := range s.userRoles {
		if ur.UserID == userID && ur.RoleID == roleID && ur.Scope == sc {
			continue
		}
		kept = append(kept, ur)
	}
	s.userRoles = kept
}

// GrantPermission grants a permission to a role within a scope, upserting
// on the (role, permission, scope) tuple. Setting AccessNone keeps the row
// as a revoke marker without deleting it.
func (s *MemorySource) GrantPermission(roleID uuid.UUID, permission Permission, sc scope.Scope, level AccessLevel) error {
	if err := sc.ValidateGrant(); err != nil {
		return err
	}
	if !level.Valid() {
		return ErrInvalidPermission
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rp := range s.rolePermissions {
		if rp.RoleID == roleID && rp.Permission == permission && rp.Scope == sc {
			s.rolePermissions[i].AccessLevel = level
			return nil
		}
	}
	s.rolePermissions = append(s.rolePermissions, RolePermission{
		RoleID:      roleID,
		Permission:  permission,
		Scope:       sc,
		AccessLevel: level,
	})
	return nil
}

// FindUserRoles returns the user's role assignments matching the requested scope.
func (s *MemorySource) FindUserRoles(ctx context.Context, userID uuid.UUID, requested scope.Scope) ([]UserRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []UserRole
	for _, ur := range s.userRoles {
		if ur.UserID == userID && ur.Scope.Matches(requested) {
			out = append(out, ur)
		}
	}
	return out, nil
}

// FindRolePermissions returns grants of the permission to any of the given
// roles matching the requested scope, excluding "none" rows.
func (s *MemorySource) FindRolePermissions(ctx context.Context, roleIDs []uuid.UUID, permission Permission, requested scope.Scope) ([]RolePermission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[uuid.UUID]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		wanted[id] = struct{}{}
	}

	var out []RolePermission
	for _, rp := range s.rolePermissions {
		if _, ok := wanted[rp.RoleID]; !ok {
			continue
		}
		if rp.Permission != permission || rp.AccessLevel == AccessNone {
			continue
		}
		if rp.Scope.Matches(requested) {
			out = append(out, rp)
		}
	}
	return out, nil
}
