package lockout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists lockout state on the users table itself, in the
// failed_login_attempts, last_failed_login_at, locked_until and is_locked
// columns. Unlike the in-memory and Redis stores it is keyed on existing
// accounts: unknown ids surface ErrUserNotFound.
type PGStore struct {
	db *pgxpool.Pool
}

var (
	_ Store              = (*PGStore)(nil)
	_ FailureIncrementer = (*PGStore)(nil)
)

// NewPGStore creates a lockout store on top of an existing connection pool.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Get returns the account's lockout state.
func (s *PGStore) Get(ctx context.Context, userID uuid.UUID) (State, error) {
	var state State
	err := s.db.QueryRow(ctx, `
		SELECT failed_login_attempts, last_failed_login_at, locked_until, is_locked
		FROM users
		WHERE id = $1`,
		userID).Scan(&state.FailedAttempts, &state.LastFailedAt, &state.LockedUntil, &state.Locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return State{}, ErrUserNotFound
		}
		return State{}, err
	}
	return state, nil
}

// Put replaces the account's lockout state.
func (s *PGStore) Put(ctx context.Context, userID uuid.UUID, state State) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users
		SET failed_login_attempts = $2,
		    last_failed_login_at = $3,
		    locked_until = $4,
		    is_locked = $5
		WHERE id = $1`,
		userID, state.FailedAttempts, state.LastFailedAt, state.LockedUntil, state.Locked)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// IncrementFailures applies the reset window and increments the counter in
// a single statement, so concurrent failures cannot undercount.
func (s *PGStore) IncrementFailures(ctx context.Context, userID uuid.UUID, now time.Time, resetWindow time.Duration) (int, error) {
	var attempts int
	err := s.db.QueryRow(ctx, `
		UPDATE users
		SET failed_login_attempts = CASE
		        WHEN last_failed_login_at IS NULL OR $2::timestamptz - last_failed_login_at > $3
		        THEN 1
		        ELSE failed_login_attempts + 1
		    END,
		    last_failed_login_at = $2
		WHERE id = $1
		RETURNING failed_login_attempts`,
		userID, now, resetWindow).Scan(&attempts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return attempts, nil
}
