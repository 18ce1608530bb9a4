// Package authguard combines password verification with the lockout
// guard so login endpoints get brute-force protection and
// enumeration-safe failures from a single call.
//
//	guard, _ := lockout.NewGuard(store, lockout.Config{MaxAttempts: 5, LockDuration: 30 * time.Minute, ResetWindow: 15 * time.Minute})
//	auth := authguard.NewAuthenticator(credentials, guard)
//
//	user, err := auth.Authenticate(ctx, "alice", password)
//	switch {
//	case errors.Is(err, authguard.ErrAccountLocked):
//	    // refuse without checking the password
//	case errors.Is(err, authguard.ErrInvalidCredentials):
//	    var failed *authguard.FailedAttemptError
//	    if errors.As(err, &failed) {
//	        // failed.RemainingAttempts, failed.LockedUntil
//	    }
//	}
//
// Unknown usernames and wrong passwords produce the same error and
// comparable response time, so callers cannot probe for valid accounts.
package authguard
