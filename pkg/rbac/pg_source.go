package rbac

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/guardkit/pkg/scope"
)

// PGSource is a GrantSource backed by PostgreSQL. It expects the schema
// shipped in the migrations directory: permissions(id, name), roles(id, name),
// user_roles(user_id, role_id, scope_type, scope_object_id) and
// role_permissions(role_id, permission_id, scope_type, scope_object_id,
// access_level), with upsert uniqueness on the scope-qualified tuples.
type PGSource struct {
	db *pgxpool.Pool
}

var _ GrantSource = (*PGSource)(nil)

// NewPGSource creates a grant source on top of an existing connection pool.
func NewPGSource(db *pgxpool.Pool) *PGSource {
	return &PGSource{db: db}
}

// FindUserRoles returns the user's role assignments matching the requested scope.
func (s *PGSource) FindUserRoles(ctx context.Context, userID uuid.UUID, requested scope.Scope) ([]UserRole, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_id, role_id, scope_type, scope_object_id
		FROM user_roles
		WHERE user_id = $1
		  AND scope_type = $2
		  AND scope_object_id = ANY($3)`,
		userID, requested.Type, requested.ObjectIDCandidates())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UserRole
	for rows.Next() {
		var ur UserRole
		if err := rows.Scan(&ur.UserID, &ur.RoleID, &ur.Scope.Type, &ur.Scope.ObjectID); err != nil {
			return nil, err
		}
		out = append(out, ur)
	}
	return out, rows.Err()
}

// FindRolePermissions returns grants of the permission to any of the given
// roles matching the requested scope. Rows with access level "none" are
// revoke markers and are filtered in SQL.
func (s *PGSource) FindRolePermissions(ctx context.Context, roleIDs []uuid.UUID, permission Permission, requested scope.Scope) ([]RolePermission, error) {
	rows, err := s.db.Query(ctx, `
		SELECT rp.role_id, p.name, rp.scope_type, rp.scope_object_id, rp.access_level
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = ANY($1)
		  AND p.name = $2
		  AND rp.scope_type = $3
		  AND rp.scope_object_id = ANY($4)
		  AND rp.access_level <> 'none'`,
		roleIDs, string(permission), requested.Type, requested.ObjectIDCandidates())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RolePermission
	for rows.Next() {
		var rp RolePermission
		var name string
		var level string
		if err := rows.Scan(&rp.RoleID, &name, &rp.Scope.Type, &rp.Scope.ObjectID, &level); err != nil {
			return nil, err
		}
		rp.Permission = Permission(name)
		rp.AccessLevel = AccessLevel(level)
		out = append(out, rp)
	}
	return out, rows.Err()
}
