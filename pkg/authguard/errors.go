package authguard

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors for guarded authentication.
var (
	// ErrInvalidCredentials is the generic failure for every bad-login
	// shape: unknown user, missing hash, wrong password. One error for
	// all of them keeps usernames unenumerable.
	ErrInvalidCredentials = errors.New("authguard.invalid_credentials")

	// ErrAccountLocked is returned when the lockout guard refuses the
	// attempt before credentials are even checked.
	ErrAccountLocked = errors.New("authguard.account_locked")

	// ErrGuardFailure wraps lockout or storage errors unrelated to the
	// credentials themselves.
	ErrGuardFailure = errors.New("authguard.guard_failure")
)

// FailedAttemptError is returned for a counted failed attempt. It unwraps
// to ErrInvalidCredentials and carries the lockout feedback the login
// surface may show: attempts left, and the lock deadline once it trips.
type FailedAttemptError struct {
	RemainingAttempts int
	LockedUntil       *time.Time
}

func (e *FailedAttemptError) Error() string {
	if e.LockedUntil != nil {
		return fmt.Sprintf("invalid credentials: account locked until %s", e.LockedUntil.Format(time.RFC3339))
	}
	return fmt.Sprintf("invalid credentials: %d attempts remaining", e.RemainingAttempts)
}

func (e *FailedAttemptError) Unwrap() error {
	return ErrInvalidCredentials
}
