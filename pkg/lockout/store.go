package lockout

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists per-account lockout state. Putting a zero State clears
// the record.
type Store interface {
	// Get returns the account's lockout state. Unknown accounts return a
	// zero State, not an error; stores keyed on an existing user table may
	// return ErrUserNotFound instead.
	Get(ctx context.Context, userID uuid.UUID) (State, error)

	// Put replaces the account's lockout state.
	Put(ctx context.Context, userID uuid.UUID, state State) error
}

// FailureIncrementer is an optional store capability: an atomic
// increment-and-return of the failure counter, honoring the reset window.
// Stores implementing it avoid undercounting when concurrent failed logins
// race on the same account; without it the guard falls back to
// read-modify-write.
type FailureIncrementer interface {
	// IncrementFailures restarts the counter at one when the previous
	// failure is older than resetWindow, increments it otherwise, records
	// now as the last failure time, and returns the new counter value.
	IncrementFailures(ctx context.Context, userID uuid.UUID, now time.Time, resetWindow time.Duration) (int, error)
}
