package lockout_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/lockout"
)

func newRedisStore(t *testing.T) (*lockout.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return lockout.NewRedisStore(client, 15*time.Minute), mr
}

func TestRedisStore_GetPutRoundtrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	userID := uuid.New()

	// Unknown accounts are clean.
	state, err := store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, state)

	failedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	until := failedAt.Add(30 * time.Minute)
	want := lockout.State{
		FailedAttempts: 5,
		LastFailedAt:   &failedAt,
		LockedUntil:    &until,
	}
	require.NoError(t, store.Put(ctx, userID, want))

	state, err = store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, want, state)

	// Zero state drops the record.
	require.NoError(t, store.Put(ctx, userID, lockout.State{}))
	state, err = store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, state)
}

func TestRedisStore_PermanentLock(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	userID := uuid.New()

	require.NoError(t, store.Put(ctx, userID, lockout.State{Locked: true}))

	state, err := store.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, state.Locked)
	assert.Nil(t, state.LockedUntil)
}

func TestRedisStore_IncrementFailures(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	for want := 1; want <= 3; want++ {
		got, err := store.IncrementFailures(ctx, userID, now, 15*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Counter expiry implements the sliding reset window: after the window
	// lapses the next failure counts as the first again.
	mr.FastForward(16 * time.Minute)

	got, err := store.IncrementFailures(ctx, userID, now.Add(16*time.Minute), 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestRedisStore_GuardEndToEnd(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	userID := uuid.New()

	guard, err := lockout.NewGuard(store, lockout.DefaultConfig())
	require.NoError(t, err)

	for i := 1; i < 5; i++ {
		status, err := guard.RecordFailure(ctx, userID)
		require.NoError(t, err)
		assert.False(t, status.Locked)
		assert.Equal(t, 5-i, status.RemainingAttempts)
	}

	status, err := guard.RecordFailure(ctx, userID)
	require.NoError(t, err)
	assert.True(t, status.Locked)
	require.NotNil(t, status.LockedUntil)

	// Redis TTL on the counter plays the reset window; the lock hash has
	// no TTL and survives until the guard clears it.
	mr.FastForward(16 * time.Minute)
	status, err = guard.Status(ctx, userID)
	require.NoError(t, err)
	assert.True(t, status.Locked, "lock outlives the counter window")
}
