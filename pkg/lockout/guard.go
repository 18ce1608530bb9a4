package lockout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Guard tracks failed authentication attempts per account and escalates to
// a timed lock. Permanent administrative locks are entered and exited only
// through Lock and Unlock and always take precedence over the timer.
type Guard struct {
	store  Store
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// GuardOption configures a Guard during construction.
type GuardOption func(*Guard)

// WithLogger sets a custom logger for the guard.
func WithLogger(logger *slog.Logger) GuardOption {
	return func(g *Guard) {
		g.logger = logger
	}
}

// WithClock overrides the guard's time source, used by tests.
func WithClock(now func() time.Time) GuardOption {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGuard creates a lockout guard over the given store.
func NewGuard(store Store, cfg Config, opts ...GuardOption) (*Guard, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	g := &Guard{
		store:  store,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Status reports whether the account may attempt authentication. An expired
// temporary lock is cleared as a side effect of the read, resetting the
// counter and timestamps.
func (g *Guard) Status(ctx context.Context, userID uuid.UUID) (Status, error) {
	state, err := g.store.Get(ctx, userID)
	if err != nil {
		return Status{}, errors.Join(ErrStoreFailure, err)
	}
	return g.status(ctx, userID, state)
}

func (g *Guard) status(ctx context.Context, userID uuid.UUID, state State) (Status, error) {
	// Permanent lock first: it ignores the timer entirely.
	if state.Locked {
		return Status{Locked: true, Permanent: true}, nil
	}

	if state.LockedUntil != nil {
		if g.now().Before(*state.LockedUntil) {
			until := *state.LockedUntil
			return Status{Locked: true, LockedUntil: &until}, nil
		}

		// Opportunistic auto-unlock: the deadline passed, clear everything.
		if err := g.store.Put(ctx, userID, State{}); err != nil {
			return Status{}, errors.Join(ErrStoreFailure, err)
		}
		g.logger.InfoContext(ctx, "temporary lock expired",
			slog.String("user_id", userID.String()))
		return Status{RemainingAttempts: g.cfg.MaxAttempts}, nil
	}

	return Status{RemainingAttempts: g.remaining(state.FailedAttempts)}, nil
}

// RecordFailure counts a failed authentication attempt. An already-locked
// account short-circuits: the counter is not incremented and the lock is
// not extended. Reaching the threshold escalates to a temporary lock and
// the returned status carries the deadline.
func (g *Guard) RecordFailure(ctx context.Context, userID uuid.UUID) (Status, error) {
	state, err := g.store.Get(ctx, userID)
	if err != nil {
		return Status{}, errors.Join(ErrStoreFailure, err)
	}

	status, err := g.status(ctx, userID, state)
	if err != nil {
		return Status{}, err
	}
	if status.Locked {
		return status, nil
	}
	if state.LockedUntil != nil {
		// The temporary lock just expired and was cleared; count against a
		// fresh record, not the stale pre-lock counter.
		state = State{}
	}

	now := g.now()

	attempts, err := g.countFailure(ctx, userID, state, now)
	if err != nil {
		return Status{}, errors.Join(ErrStoreFailure, err)
	}

	if attempts < g.cfg.MaxAttempts {
		return Status{RemainingAttempts: g.cfg.MaxAttempts - attempts}, nil
	}

	until := now.Add(g.cfg.LockDuration)
	if err := g.store.Put(ctx, userID, State{
		FailedAttempts: attempts,
		LastFailedAt:   &now,
		LockedUntil:    &until,
	}); err != nil {
		return Status{}, errors.Join(ErrStoreFailure, err)
	}

	g.logger.WarnContext(ctx, "account temporarily locked",
		slog.String("user_id", userID.String()),
		slog.Int("failed_attempts", attempts),
		slog.Time("locked_until", until))

	return Status{Locked: true, LockedUntil: &until}, nil
}

// countFailure applies the sliding reset window and increments the counter,
// atomically when the store supports it.
func (g *Guard) countFailure(ctx context.Context, userID uuid.UUID, state State, now time.Time) (int, error) {
	if inc, ok := g.store.(FailureIncrementer); ok {
		return inc.IncrementFailures(ctx, userID, now, g.cfg.ResetWindow)
	}

	attempts := state.FailedAttempts
	if state.LastFailedAt != nil && now.Sub(*state.LastFailedAt) > g.cfg.ResetWindow {
		attempts = 0
	}
	attempts++

	if err := g.store.Put(ctx, userID, State{
		FailedAttempts: attempts,
		LastFailedAt:   &now,
	}); err != nil {
		return 0, err
	}
	return attempts, nil
}

// RecordSuccess clears the failure counter and timestamps after a
// successful authentication.
func (g *Guard) RecordSuccess(ctx context.Context, userID uuid.UUID) error {
	state, err := g.store.Get(ctx, userID)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if state.clean() {
		return nil
	}
	// A lock is never cleared by a success: a locked account should not
	// have authenticated in the first place.
	if state.Locked || state.LockedUntil != nil {
		return nil
	}
	if err := g.store.Put(ctx, userID, State{}); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// Lock places a permanent administrative lock on the account.
func (g *Guard) Lock(ctx context.Context, userID uuid.UUID) error {
	if err := g.store.Put(ctx, userID, State{Locked: true}); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	g.logger.WarnContext(ctx, "account locked by administrator",
		slog.String("user_id", userID.String()))
	return nil
}

// Unlock clears any lock, administrative or timed, and resets the counter.
func (g *Guard) Unlock(ctx context.Context, userID uuid.UUID) error {
	if err := g.store.Put(ctx, userID, State{}); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	g.logger.InfoContext(ctx, "account unlocked by administrator",
		slog.String("user_id", userID.String()))
	return nil
}

func (g *Guard) remaining(attempts int) int {
	if attempts >= g.cfg.MaxAttempts {
		return 0
	}
	return g.cfg.MaxAttempts - attempts
}
