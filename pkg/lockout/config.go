package lockout

import (
	"fmt"
	"time"
)

// Config tunes the lockout state machine.
type Config struct {
	// MaxAttempts is the consecutive-failure threshold that triggers a
	// temporary lock.
	MaxAttempts int `env:"LOCKOUT_MAX_ATTEMPTS" envDefault:"5"`

	// LockDuration is how long a temporary lock lasts.
	LockDuration time.Duration `env:"LOCKOUT_DURATION" envDefault:"30m"`

	// ResetWindow is the sliding inactivity window: a failure arriving
	// after more than this gap restarts the counter at one.
	ResetWindow time.Duration `env:"LOCKOUT_RESET_WINDOW" envDefault:"15m"`
}

// DefaultConfig returns the standard 5-attempt, 30-minute-lock,
// 15-minute-window configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  5,
		LockDuration: 30 * time.Minute,
		ResetWindow:  15 * time.Minute,
	}
}

func (c Config) validate() error {
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max attempts must be positive, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	if c.LockDuration <= 0 {
		return fmt.Errorf("%w: lock duration must be positive, got %v", ErrInvalidConfig, c.LockDuration)
	}
	if c.ResetWindow <= 0 {
		return fmt.Errorf("%w: reset window must be positive, got %v", ErrInvalidConfig, c.ResetWindow)
	}
	return nil
}
