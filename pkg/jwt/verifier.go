package jwt

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/guardkit/pkg/routeguard"
)

// AccessClaims are the claims carried by access tokens the route guard
// accepts. Subject holds the user id.
type AccessClaims struct {
	StandardClaims
	Username string `json:"username,omitempty"`
}

// Verifier adapts the token service to the route guard's verifier hook.
func (s *Service) Verifier() routeguard.TokenVerifier {
	return func(ctx context.Context, token string) (*routeguard.Identity, error) {
		var claims AccessClaims
		if err := s.Parse(token, &claims); err != nil {
			return nil, err
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return nil, errors.Join(ErrInvalidClaims, err)
		}

		return &routeguard.Identity{UserID: userID, Username: claims.Username}, nil
	}
}
