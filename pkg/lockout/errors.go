package lockout

import "errors"

// Domain errors for lockout tracking.
var (
	// ErrAccountLocked is returned by callers enforcing a lock; the guard
	// itself reports lock state via Status.
	ErrAccountLocked = errors.New("lockout.account_locked")

	// ErrUserNotFound is returned by stores keyed on existing accounts
	// when the account is unknown. Callers must fold it into a generic
	// denial to avoid username enumeration.
	ErrUserNotFound = errors.New("lockout.user_not_found")

	// ErrInvalidConfig is returned when guard configuration is malformed.
	ErrInvalidConfig = errors.New("lockout.invalid_config")

	// ErrStoreFailure wraps persistence errors. Never folded into an
	// unlocked status.
	ErrStoreFailure = errors.New("lockout.store_failure")
)
