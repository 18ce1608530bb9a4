package lockout

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix    = "lockout:"
	redisFailuresKey  = ":failures"
	fieldLastFailedAt = "last_failed_at"
	fieldLockedUntil  = "locked_until"
	fieldLocked       = "locked"
)

// RedisStore is a lockout store backed by Redis. The failure counter lives
// in its own key with a TTL equal to the reset window, so the sliding
// inactivity reset falls out of key expiry, and INCR gives the atomic
// increment-and-return that keeps concurrent failures from undercounting.
type RedisStore struct {
	client      *redis.Client
	resetWindow time.Duration
}

var (
	_ Store              = (*RedisStore)(nil)
	_ FailureIncrementer = (*RedisStore)(nil)
)

// NewRedisStore creates a lockout store on top of an existing Redis client.
// The reset window must match the guard's configuration; it controls the
// failure counter's expiry.
func NewRedisStore(client *redis.Client, resetWindow time.Duration) *RedisStore {
	return &RedisStore{client: client, resetWindow: resetWindow}
}

func stateKey(userID uuid.UUID) string {
	return redisKeyPrefix + userID.String()
}

func failuresKey(userID uuid.UUID) string {
	return redisKeyPrefix + userID.String() + redisFailuresKey
}

// Get assembles the account's state from the lock hash and the counter key.
func (s *RedisStore) Get(ctx context.Context, userID uuid.UUID) (State, error) {
	fields, err := s.client.HGetAll(ctx, stateKey(userID)).Result()
	if err != nil {
		return State{}, err
	}

	attempts, err := s.client.Get(ctx, failuresKey(userID)).Int()
	if err != nil && err != redis.Nil {
		return State{}, err
	}

	state := State{FailedAttempts: attempts}
	if v, ok := fields[fieldLastFailedAt]; ok {
		if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
			t := time.Unix(ts, 0).UTC()
			state.LastFailedAt = &t
		}
	}
	if v, ok := fields[fieldLockedUntil]; ok {
		if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
			t := time.Unix(ts, 0).UTC()
			state.LockedUntil = &t
		}
	}
	state.Locked = fields[fieldLocked] == "1"

	return state, nil
}

// Put replaces the account's state. A zero state drops both keys.
func (s *RedisStore) Put(ctx context.Context, userID uuid.UUID, state State) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, stateKey(userID), failuresKey(userID))

	if !state.clean() {
		fields := make(map[string]any, 3)
		if state.LastFailedAt != nil {
			fields[fieldLastFailedAt] = strconv.FormatInt(state.LastFailedAt.Unix(), 10)
		}
		if state.LockedUntil != nil {
			fields[fieldLockedUntil] = strconv.FormatInt(state.LockedUntil.Unix(), 10)
		}
		if state.Locked {
			fields[fieldLocked] = "1"
		}
		if len(fields) > 0 {
			pipe.HSet(ctx, stateKey(userID), fields)
		}
		if state.FailedAttempts > 0 {
			pipe.Set(ctx, failuresKey(userID), state.FailedAttempts, s.resetWindow)
		}
	}

	_, err := pipe.Exec(ctx)
	return err
}

// IncrementFailures atomically increments the failure counter and refreshes
// its expiry. A counter that lapsed restarts at one, which is exactly the
// sliding reset-window semantic.
func (s *RedisStore) IncrementFailures(ctx context.Context, userID uuid.UUID, now time.Time, resetWindow time.Duration) (int, error) {
	key := failuresKey(userID)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, resetWindow)
	pipe.HSet(ctx, stateKey(userID), fieldLastFailedAt, strconv.FormatInt(now.Unix(), 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return int(incr.Val()), nil
}
