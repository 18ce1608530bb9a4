package routeguard

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Identity is the authenticated principal a permission check runs against.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// TokenVerifier decodes a bearer token into an identity. It is the fallback
// used when the guard runs before authentication middleware has populated
// the request context.
type TokenVerifier func(ctx context.Context, token string) (*Identity, error)

// identityCtxKey is the context key for storing the authenticated identity.
type identityCtxKey struct{}

// WithIdentity stores the authenticated identity in the context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

// IdentityFromContext retrieves the authenticated identity from the context.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*Identity)
	return identity, ok && identity != nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Empty string when absent or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
