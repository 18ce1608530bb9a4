package security

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/guardkit/pkg/authguard"
	"github.com/dmitrymomot/guardkit/pkg/jwt"
)

const accessTokenTTL = time.Hour

type authHandler struct {
	authenticator authguard.Authenticator
	tokens        *jwt.Service
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	now := time.Now()
	token, err := h.tokens.Generate(jwt.AccessClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID.String(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(accessTokenTTL).Unix(),
		},
		Username: user.Username,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_server_error", nil)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
	})
}

// writeAuthError maps authentication failures to responses. Credential
// failures stay generic apart from the lockout feedback the attempt itself
// already earned.
func (h *authHandler) writeAuthError(w http.ResponseWriter, err error) {
	var failed *authguard.FailedAttemptError
	switch {
	case errors.Is(err, authguard.ErrAccountLocked):
		writeError(w, http.StatusLocked, "account_locked", nil)
	case errors.As(err, &failed):
		extra := map[string]any{"remaining_attempts": failed.RemainingAttempts}
		if failed.LockedUntil != nil {
			extra["locked_until"] = failed.LockedUntil.UTC().Format(time.RFC3339)
		}
		writeError(w, http.StatusUnauthorized, "invalid_credentials", extra)
	case errors.Is(err, authguard.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", nil)
	default:
		writeError(w, http.StatusInternalServerError, "internal_server_error", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code string, extra map[string]any) {
	body := map[string]any{"error": code}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, status, body)
}
