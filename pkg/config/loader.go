package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]any)

	defaultEnvLoaded sync.Once
)

// Load fills the target struct from environment variables using `env` field
// tags. A .env file in the working directory is applied first if present.
// Each configuration type is parsed once per process; later calls for the
// same type return the cached copy.
//
//	type PostgresConfig struct {
//	    DSN string `env:"POSTGRES_DSN,required"`
//	}
//
//	var cfg PostgresConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	defaultEnvLoaded.Do(func() {
		// Missing .env is fine, the environment may be set directly.
		_ = godotenv.Load()
	})

	key := typeName[T]()

	cacheMu.RLock()
	cached, ok := cache[key]
	cacheMu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	cacheMu.Lock()
	// First writer wins so concurrent loaders observe one consistent copy.
	if cached, ok := cache[key]; ok {
		*v = cached.(T)
	} else {
		cache[key] = *v
	}
	cacheMu.Unlock()

	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("load configuration: %v", err))
	}
}

// LoadEnvFiles applies the named .env files before any Load call. Unlike
// the implicit default file, a named file that cannot be read is an error.
func LoadEnvFiles(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Reset clears the cache so tests can reload configuration with a
// modified environment.
func Reset() {
	cacheMu.Lock()
	cache = make(map[string]any)
	cacheMu.Unlock()
}

func typeName[T any]() string {
	var zero T
	if t := reflect.TypeOf(zero); t != nil {
		return t.String()
	}
	return fmt.Sprintf("%T", *new(T))
}
