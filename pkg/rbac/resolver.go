package rbac

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/guardkit/pkg/scope"
)

// Resolver decides whether a user may exercise a permission within a scope.
type Resolver interface {
	// HasPermission reports whether the user holds the permission in the
	// requested scope. A store failure is returned as an error and is
	// never folded into the boolean.
	HasPermission(ctx context.Context, userID uuid.UUID, permission Permission, requested scope.Scope) (bool, error)

	// Require is a convenience wrapper returning ErrPermissionDenied when
	// HasPermission reports false.
	Require(ctx context.Context, userID uuid.UUID, permission Permission, requested scope.Scope) error
}

// GrantSource is the query contract against the grant store. Both methods
// must filter by scope type and by object id in {requested, "*"}; the
// resolver re-checks the results, so a source returning wider rows cannot
// widen access, only waste work.
type GrantSource interface {
	// FindUserRoles returns the user's role assignments matching the
	// requested scope.
	FindUserRoles(ctx context.Context, userID uuid.UUID, requested scope.Scope) ([]UserRole, error)

	// FindRolePermissions returns grants of the named permission to any of
	// the given roles matching the requested scope, excluding rows with
	// access level "none".
	FindRolePermissions(ctx context.Context, roleIDs []uuid.UUID, permission Permission, requested scope.Scope) ([]RolePermission, error)
}

type resolver struct {
	source GrantSource
	logger *slog.Logger
}

// ResolverOption configures a resolver during construction.
type ResolverOption func(*resolver)

// WithLogger sets a custom logger for the resolver.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver backed by the given grant source. Every
// resolution re-queries the source: there is no in-process grant cache, so
// a revoked grant takes effect on the next check.
func NewResolver(source GrantSource, opts ...ResolverOption) Resolver {
	r := &resolver{
		source: source,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// HasPermission composes the two-step RBAC join: role membership in the
// requested scope, then permission grants to those roles in the same scope.
// Grants are additive only; there is no deny override.
func (r *resolver) HasPermission(ctx context.Context, userID uuid.UUID, permission Permission, requested scope.Scope) (bool, error) {
	if permission == "" {
		return false, ErrInvalidPermission
	}
	if err := requested.Validate(); err != nil {
		return false, errors.Join(ErrInvalidScope, err)
	}

	assignments, err := r.source.FindUserRoles(ctx, userID, requested)
	if err != nil {
		return false, errors.Join(ErrStoreFailure, err)
	}

	roleIDs := matchingRoleIDs(assignments, requested)
	if len(roleIDs) == 0 {
		// Deny by default: no role held in the requested scope means no
		// access, even if the user holds roles in other scope types.
		r.logger.DebugContext(ctx, "permission denied: no roles in scope",
			slog.String("user_id", userID.String()),
			slog.String("permission", string(permission)),
			slog.String("scope", requested.String()))
		return false, nil
	}

	grants, err := r.source.FindRolePermissions(ctx, roleIDs, permission, requested)
	if err != nil {
		return false, errors.Join(ErrStoreFailure, err)
	}

	for _, g := range grants {
		if g.Permission != permission {
			continue
		}
		// Each row is evaluated independently by scope: a "none" row never
		// satisfies a check even when a sibling row with another scope does.
		if !g.AccessLevel.Grants() {
			continue
		}
		if g.Scope.Matches(requested) {
			return true, nil
		}
	}

	return false, nil
}

// Require returns ErrPermissionDenied when the user does not hold the
// permission in the requested scope.
func (r *resolver) Require(ctx context.Context, userID uuid.UUID, permission Permission, requested scope.Scope) error {
	ok, err := r.HasPermission(ctx, userID, permission, requested)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}
	return nil
}

// matchingRoleIDs collects distinct role ids from assignments whose scope
// actually covers the requested scope.
func matchingRoleIDs(assignments []UserRole, requested scope.Scope) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(assignments))
	ids := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		if !a.Scope.Matches(requested) {
			continue
		}
		if _, ok := seen[a.RoleID]; ok {
			continue
		}
		seen[a.RoleID] = struct{}{}
		ids = append(ids, a.RoleID)
	}
	return ids
}
