package authguard

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/guardkit/pkg/lockout"
	"github.com/dmitrymomot/guardkit/pkg/logger"
)

// dummyHash is a valid bcrypt hash of a random throwaway value. Compared
// against when the username is unknown so lookup misses cost the same as
// a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// User is the authenticated account returned on success.
type User struct {
	ID       uuid.UUID
	Username string
}

// CredentialStore resolves usernames to accounts and their password hashes.
type CredentialStore interface {
	// FindUserByUsername returns the account for the username or
	// ErrInvalidCredentials-compatible failure (any error is treated as
	// an unknown user).
	FindUserByUsername(ctx context.Context, username string) (*User, error)

	// GetPasswordHash returns the stored bcrypt hash for the account.
	GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// Authenticator verifies credentials under lockout protection.
type Authenticator interface {
	// Authenticate checks the lock, verifies the password, and records
	// the outcome. It returns ErrAccountLocked for a locked account, a
	// FailedAttemptError (unwrapping to ErrInvalidCredentials) for a
	// counted failure, and the user on success.
	Authenticate(ctx context.Context, username, password string) (*User, error)
}

type authenticator struct {
	store  CredentialStore
	guard  *lockout.Guard
	logger *slog.Logger
}

// Option configures an Authenticator.
type Option func(*authenticator)

// WithLogger sets a custom logger for authentication events.
func WithLogger(log *slog.Logger) Option {
	return func(a *authenticator) {
		a.logger = log
	}
}

// NewAuthenticator composes a credential store with a lockout guard.
func NewAuthenticator(store CredentialStore, guard *lockout.Guard, opts ...Option) Authenticator {
	a := &authenticator{
		store:  store,
		guard:  guard,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *authenticator) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := a.store.FindUserByUsername(ctx, username)
	if err != nil || user == nil {
		// Burn a comparison so unknown usernames take as long as wrong
		// passwords. No lockout record exists to count against.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, ErrInvalidCredentials
	}

	status, err := a.guard.Status(ctx, user.ID)
	if err != nil {
		return nil, errors.Join(ErrGuardFailure, err)
	}
	if status.Locked {
		a.logger.WarnContext(ctx, "authentication refused for locked account",
			logger.Component("authguard"),
			logger.UserID(user.ID.String()))
		return nil, ErrAccountLocked
	}

	hash, err := a.store.GetPasswordHash(ctx, user.ID)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		status, ferr := a.guard.RecordFailure(ctx, user.ID)
		if ferr != nil {
			return nil, errors.Join(ErrGuardFailure, ferr)
		}
		a.logger.InfoContext(ctx, "failed authentication attempt",
			logger.Component("authguard"),
			logger.UserID(user.ID.String()),
			slog.Int("remaining_attempts", status.RemainingAttempts))
		return nil, &FailedAttemptError{
			RemainingAttempts: status.RemainingAttempts,
			LockedUntil:       status.LockedUntil,
		}
	}

	if err := a.guard.RecordSuccess(ctx, user.ID); err != nil {
		return nil, errors.Join(ErrGuardFailure, err)
	}

	return user, nil
}

// HashPassword produces a bcrypt hash suitable for CredentialStore storage.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
