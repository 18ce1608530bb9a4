package lockout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/lockout"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestGuard(t *testing.T) (*lockout.Guard, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	guard, err := lockout.NewGuard(lockout.NewMemoryStore(), lockout.DefaultConfig(),
		lockout.WithClock(clock.Now))
	require.NoError(t, err)
	return guard, clock
}

func TestGuard_ThresholdLocks(t *testing.T) {
	ctx := context.Background()
	guard, clock := newTestGuard(t)
	userID := uuid.New()

	for i := 1; i < 5; i++ {
		status, err := guard.RecordFailure(ctx, userID)
		require.NoError(t, err)
		assert.False(t, status.Locked, "failure %d must not lock", i)
		assert.Equal(t, 5-i, status.RemainingAttempts)
	}

	status, err := guard.RecordFailure(ctx, userID)
	require.NoError(t, err)
	assert.True(t, status.Locked)
	assert.False(t, status.Permanent)
	assert.Equal(t, 0, status.RemainingAttempts)
	require.NotNil(t, status.LockedUntil)
	assert.Equal(t, clock.Now().Add(30*time.Minute), *status.LockedUntil)
}

func TestGuard_LockedAccountShortCircuits(t *testing.T) {
	ctx := context.Background()
	guard, clock := newTestGuard(t)
	userID := uuid.New()

	for rangeIter := 0; rangeIter < 5; rangeIter++ {
		_, err := guard.RecordFailure(ctx, userID)
		require.NoError(t, err)
	}

	lockedAt := clock.Now()
	clock.Advance(10 * time.Minute)

	// Further failures must not extend the lock or bump the counter.
	status, err := guard.RecordFailure(ctx, userID)
	require.NoError(t, err)
	assert.True(t, status.Locked)
	require.NotNil(t, status.LockedUntil)
	assert.Equal(t, lockedAt.Add(30*time.Minute), *status.LockedUntil)
}

func TestGuard_ResetWindow(t *testing.T) {
	ctx := context.Background()
	guard, clock := newTestGuard(t)
	userID := uuid.New()

	_, err := guard.RecordFailure(ctx, userID)
	require.NoError(t, err)

	// 16 minutes later: beyond the 15-minute window, so this failure
	// counts as the first, not the second.
	clock.Advance(16 * time.Minute)
	status, err := guard.RecordFailure(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, status.RemainingAttempts)

	// Within the window the counter accumulates.
	clock.Advance(14 * time.Minute)
	status, err = guard.RecordFailure(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, status.RemainingAttempts)
}

func TestGuard_AutoUnlockOnStatusCheck(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	store := lockout.NewMemoryStore()
	guard, err := lockout.NewGuard(store, lockout.DefaultConfig(), lockout.WithClock(clock.Now))
	require.NoError(t, err)
	userID := uuid.New()

	for rangeIter := 0; rangeIter < 5; rangeIter++ {
		_, err := guard.RecordFailure(ctx, userID)
		require.NoError(t, err)
	}

	clock.Advance(31 * time.Minute)

	status, err := guard.Status(ctx, userID)
	require.NoError(t, err)
	assert.False(t, status.Locked)
	assert.Nil(t, status.LockedUntil)
	assert.Equal(t, 5, status.RemainingAttempts, "auto-unlock must reset the counter")

	// The clear is a persisted side effect of the read, not a view.
	state, err := store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, state)
}

func TestGuard_FailureAfterExpiredLockCountsAsFirst(t *testing.T) {
	ctx := context.Background()
	guard, clock := newTestGuard(t)
	userID := uuid.New()

	for rangeIter := 0; rangeIter < 5; rangeIter++ {
		_, err := guard.RecordFailure(ctx, userID)
		require.NoError(t, err)
	}

	clock.Advance(31 * time.Minute)

	status, err := guard.RecordFailure(ctx, userID)
	require.NoError(t, err)
	assert.False(t, status.Locked)
	assert.Equal(t, 4, status.RemainingAttempts)
}

func TestGuard_SuccessResetsCounter(t *testing.T) {
	ctx := context.Background()
	guard, _ := newTestGuard(t)
	userID := uuid.New()

	for rangeIter := 0; rangeIter < 3; rangeIter++ {
		_, err := guard.RecordFailure(ctx, userID)
		require.NoError(t, err)
	}

	require.NoError(t, guard.RecordSuccess(ctx, userID))

	status, err := guard.Status(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 5, status.RemainingAttempts)
}

func TestGuard_PermanentLockPrecedence(t *testing.T) {
	ctx := context.Background()
	guard, clock := newTestGuard(t)
	userID := uuid.New()

	require.NoError(t, guard.Lock(ctx, userID))

	// Time never releases an administrative lock.
	clock.Advance(365 * 24 * time.Hour)

	status, err := guard.Status(ctx, userID)
	require.NoError(t, err)
	assert.True(t, status.Locked)
	assert.True(t, status.Permanent)
	assert.Nil(t, status.LockedUntil)

	// Failures against it stay short-circuited.
	status, err = guard.RecordFailure(ctx, userID)
	require.NoError(t, err)
	assert.True(t, status.Locked)
	assert.True(t, status.Permanent)

	// Only an explicit unlock releases it.
	require.NoError(t, guard.Unlock(ctx, userID))
	status, err = guard.Status(ctx, userID)
	require.NoError(t, err)
	assert.False(t, status.Locked)
	assert.Equal(t, 5, status.RemainingAttempts)
}

func TestGuard_AdminUnlockClearsTemporaryLock(t *testing.T) {
	ctx := context.Background()
	guard, _ := newTestGuard(t)
	userID := uuid.New()

	for rangeIter := 0; rangeIter < 5; rangeIter++ {
		_, err := guard.RecordFailure(ctx, userID)
		require.NoError(t, err)
	}

	require.NoError(t, guard.Unlock(ctx, userID))

	status, err := guard.Status(ctx, userID)
	require.NoError(t, err)
	assert.False(t, status.Locked)
	assert.Equal(t, 5, status.RemainingAttempts)
}

type failingStore struct {
	err error
}

func (s *failingStore) Get(ctx context.Context, userID uuid.UUID) (lockout.State, error) {
	return lockout.State{}, s.err
}

func (s *failingStore) Put(ctx context.Context, userID uuid.UUID, state lockout.State) error {
	return s.err
}

func TestGuard_StoreFailurePropagates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	guard, err := lockout.NewGuard(&failingStore{err: boom}, lockout.DefaultConfig())
	require.NoError(t, err)

	_, err = guard.Status(ctx, uuid.New())
	assert.ErrorIs(t, err, lockout.ErrStoreFailure)
	assert.ErrorIs(t, err, boom)

	_, err = guard.RecordFailure(ctx, uuid.New())
	assert.ErrorIs(t, err, lockout.ErrStoreFailure)
}

func TestNewGuard_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  lockout.Config
	}{
		{name: "zero attempts", cfg: lockout.Config{MaxAttempts: 0, LockDuration: time.Minute, ResetWindow: time.Minute}},
		{name: "zero duration", cfg: lockout.Config{MaxAttempts: 5, LockDuration: 0, ResetWindow: time.Minute}},
		{name: "zero window", cfg: lockout.Config{MaxAttempts: 5, LockDuration: time.Minute, ResetWindow: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lockout.NewGuard(lockout.NewMemoryStore(), tt.cfg)
			assert.ErrorIs(t, err, lockout.ErrInvalidConfig)
		})
	}
}
