package routeguard

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/guardkit/pkg/rbac"
)

// ErrorHandler renders a guard failure to the client.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type middlewareConfig struct {
	verifier     TokenVerifier
	errorHandler ErrorHandler
	logger       *slog.Logger
}

// MiddlewareOption configures the guard middleware.
type MiddlewareOption func(*middlewareConfig)

// WithTokenVerifier sets the bearer-token fallback used when no identity is
// present in the request context.
func WithTokenVerifier(verifier TokenVerifier) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.verifier = verifier
	}
}

// WithErrorHandler overrides how guard failures are written to the client.
func WithErrorHandler(handler ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithMiddlewareLogger sets a custom logger for the middleware.
func WithMiddlewareLogger(logger *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Middleware guards declared routes. Requests not covered by any rule pass
// through untouched: unlisted routes rely on their own authorization.
//
// For a matched rule the middleware resolves the identity (request context
// first, then the bearer-token verifier), then asks the resolver. Failures
// map to 401 for a missing identity, 403 for a denial or rule defect, and
// 500 for a resolver error. Bodies are generic: nothing about the missing
// role, permission, or scope is revealed.
func Middleware(guard *Guard, resolver rbac.Resolver, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		errorHandler: defaultErrorHandler,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			match, err := guard.Match(r.Method, r.URL.Path)
			if err != nil {
				// Misconfigured rule: deny instead of guessing a scope.
				cfg.logger.ErrorContext(r.Context(), "route guard configuration defect",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("error", err))
				cfg.errorHandler(w, r, err)
				return
			}
			if match == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			identity, ok := IdentityFromContext(ctx)
			if !ok && cfg.verifier != nil {
				if token := bearerToken(r); token != "" {
					if verified, err := cfg.verifier(ctx, token); err == nil && verified != nil {
						identity = verified
						ctx = WithIdentity(ctx, identity)
						r = r.WithContext(ctx)
						ok = true
					}
				}
			}
			if !ok {
				cfg.errorHandler(w, r, ErrUnauthenticated)
				return
			}

			allowed, err := resolver.HasPermission(ctx, identity.UserID, match.Permission, match.Scope)
			if err != nil {
				cfg.logger.ErrorContext(ctx, "permission resolution failed",
					slog.String("user_id", identity.UserID.String()),
					slog.String("permission", string(match.Permission)),
					slog.String("scope", match.Scope.String()),
					slog.Any("error", err))
				cfg.errorHandler(w, r, errors.Join(ErrResolverFailure, err))
				return
			}
			if !allowed {
				cfg.logger.InfoContext(ctx, "request denied",
					slog.String("user_id", identity.UserID.String()),
					slog.String("permission", string(match.Permission)),
					slog.String("scope", match.Scope.String()))
				cfg.errorHandler(w, r, ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// defaultErrorHandler writes generic JSON bodies: 401 for a missing
// identity, 403 for any denial shape, 500 for resolver trouble.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	key := "internal_server_error"

	switch {
	case errors.Is(err, ErrUnauthenticated):
		code = http.StatusUnauthorized
		key = "unauthorized"
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrMissingScopeParam):
		code = http.StatusForbidden
		key = "forbidden"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": key})
}
