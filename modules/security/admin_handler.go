package security

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/guardkit/pkg/lockout"
)

type adminHandler struct {
	guard *lockout.Guard
}

type lockoutStatusResponse struct {
	Locked            bool   `json:"locked"`
	Permanent         bool   `json:"permanent"`
	LockedUntil       string `json:"locked_until,omitempty"`
	RemainingAttempts int    `json:"remaining_attempts"`
}

func (h *adminHandler) status(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	status, err := h.guard.Status(r.Context(), userID)
	if err != nil {
		h.writeGuardError(w, err)
		return
	}

	resp := lockoutStatusResponse{
		Locked:            status.Locked,
		Permanent:         status.Permanent,
		RemainingAttempts: status.RemainingAttempts,
	}
	if status.LockedUntil != nil {
		resp.LockedUntil = status.LockedUntil.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *adminHandler) lock(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.guard.Lock(r.Context(), userID); err != nil {
		h.writeGuardError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *adminHandler) unlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.guard.Unlock(r.Context(), userID); err != nil {
		h.writeGuardError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *adminHandler) writeGuardError(w http.ResponseWriter, err error) {
	if errors.Is(err, lockout.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_server_error", nil)
}

func pathUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", nil)
		return uuid.Nil, false
	}
	return userID, true
}
