package lockout

import "time"

// State is the persisted lockout record for one account. The zero value is
// a clean, unlocked account.
//
// A temporary lock carries a LockedUntil deadline. A permanent
// administrative lock sets Locked with no deadline and only an explicit
// administrative unlock clears it.
type State struct {
	FailedAttempts int
	LastFailedAt   *time.Time
	LockedUntil    *time.Time
	Locked         bool
}

// clean reports whether the state carries nothing worth persisting.
func (s State) clean() bool {
	return s.FailedAttempts == 0 && s.LastFailedAt == nil && s.LockedUntil == nil && !s.Locked
}

// Status is the outcome of a lockout check or a recorded attempt.
type Status struct {
	// Locked reports whether authentication must be refused.
	Locked bool

	// Permanent distinguishes an administrative lock from a timed one.
	Permanent bool

	// LockedUntil is the temporary lock deadline, nil otherwise.
	LockedUntil *time.Time

	// RemainingAttempts is how many more failures are tolerated before a
	// temporary lock. Zero while locked.
	RemainingAttempts int
}
