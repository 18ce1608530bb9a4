// Package lockout tracks failed authentication attempts per account and
// escalates to a timed lock after a threshold.
//
// The state machine has three states. Unlocked accounts accumulate a
// failure counter; a failure arriving after more than the reset window of
// inactivity restarts the counter at one, so sparse failures never
// accumulate. Reaching the threshold enters a temporary lock with a
// deadline, cleared opportunistically by the next status check once the
// deadline passes. A permanent administrative lock is entered only through
// Lock, exited only through Unlock, and takes precedence over the timer.
//
// Callers must check Status before verifying credentials and record the
// outcome afterwards; a failure against an already-locked account neither
// increments the counter nor extends the lock.
//
//	guard, err := lockout.NewGuard(lockout.NewMemoryStore(), lockout.DefaultConfig())
//
//	status, err := guard.Status(ctx, userID)
//	if status.Locked {
//	    // refuse authentication with a generic error
//	}
//	if credentialsValid {
//	    err = guard.RecordSuccess(ctx, userID)
//	} else {
//	    status, err = guard.RecordFailure(ctx, userID)
//	    // status.RemainingAttempts, status.LockedUntil for messaging
//	}
//
// Stores: NewMemoryStore, NewRedisStore (atomic INCR counter, reset window
// by key expiry), NewPGStore (counter columns on the users table, atomic
// single-statement increment).
package lockout
