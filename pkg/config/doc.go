// Package config loads typed configuration from environment variables,
// optionally seeded from .env files.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for .env support. Parsed configuration is
// cached per struct type for the lifetime of the process.
//
//	type LockoutConfig struct {
//	    MaxAttempts int           `env:"LOCKOUT_MAX_ATTEMPTS" envDefault:"5"`
//	    Duration    time.Duration `env:"LOCKOUT_DURATION" envDefault:"30m"`
//	}
//
//	var cfg LockoutConfig
//	config.MustLoad(&cfg)
package config
