// Package security wires the authentication and lockout administration
// endpoints into a mountable router. Login is public; the lockout
// administration surface sits behind the permission middleware.
package security

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/guardkit/pkg/authguard"
	"github.com/dmitrymomot/guardkit/pkg/jwt"
	"github.com/dmitrymomot/guardkit/pkg/lockout"
	"github.com/dmitrymomot/guardkit/pkg/rbac"
	"github.com/dmitrymomot/guardkit/pkg/routeguard"
)

// RouterOptions carries the services the module mounts.
type RouterOptions struct {
	Authenticator authguard.Authenticator
	Lockout       *lockout.Guard
	Tokens        *jwt.Service

	// Guard and Resolver protect the admin surface. Both are required.
	Guard    *routeguard.Guard
	Resolver rbac.Resolver

	Logger *slog.Logger
}

// Router mounts the security module.
//
//	r := chi.NewRouter()
//	r.Mount("/security", security.Router(security.RouterOptions{...}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	auth := &authHandler{
		authenticator: opts.Authenticator,
		tokens:        opts.Tokens,
	}
	r.Post("/login", auth.login)

	mwOpts := []routeguard.MiddlewareOption{
		routeguard.WithTokenVerifier(opts.Tokens.Verifier()),
	}
	if opts.Logger != nil {
		mwOpts = append(mwOpts, routeguard.WithMiddlewareLogger(opts.Logger))
	}

	admin := &adminHandler{guard: opts.Lockout}
	r.Route("/admin/accounts/{userID}", func(ar chi.Router) {
		ar.Use(routeguard.Middleware(opts.Guard, opts.Resolver, mwOpts...))
		ar.Get("/lockout", admin.status)
		ar.Post("/lock", admin.lock)
		ar.Post("/unlock", admin.unlock)
	})

	return r
}
