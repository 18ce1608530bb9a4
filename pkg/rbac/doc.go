// Package rbac provides scoped role-based access control resolution.
// It decides whether a user may exercise a named permission within a scope
// by composing two grant tables: user-to-role assignments and
// role-to-permission grants, both tagged with a scope.
//
// Key concepts:
//
//   - Permission: a named capability such as "world.edit"
//   - UserRole: a role held by a user within a scope
//   - RolePermission: a permission granted to a role within a scope, with
//     an access level; level "none" is a revoke marker
//   - Wildcard: a stored grant with object id "*" covers every object of
//     its scope type
//
// Grants are additive only: there is no deny override, and removing access
// means deleting a grant or setting its level to "none". Resolution is
// deny-by-default and re-queries the grant source on every check, so a
// revocation is visible immediately.
//
// Basic usage:
//
//	source := rbac.NewMemorySource()
//	_ = source.AssignRole(userID, adminRole, scope.NewWildcard("world"))
//	_ = source.GrantPermission(adminRole, "world.edit", scope.NewWildcard("world"), rbac.AccessAdmin)
//
//	resolver := rbac.NewResolver(source)
//	ok, err := resolver.HasPermission(ctx, userID, "world.edit", scope.New("world", "7"))
//
//	// Handler-style check:
//	if err := resolver.Require(ctx, userID, "world.edit", scope.New("world", "7")); err != nil {
//	    // errors.Is(err, rbac.ErrPermissionDenied) for denial,
//	    // errors.Is(err, rbac.ErrStoreFailure) for persistence trouble.
//	}
//
// Production deployments back the resolver with NewPGSource (pgx pool) or
// NewMongoSource; NewMemorySource serves tests and single-process setups.
package rbac
