package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the target struct.
	ErrParsingConfig = errors.New("config.parsing_failed")

	// ErrNilPointer is returned when Load receives a nil target.
	ErrNilPointer = errors.New("config.nil_pointer")

	// ErrLoadingEnvFile is returned when an explicitly named .env file
	// cannot be read.
	ErrLoadingEnvFile = errors.New("config.env_file_unreadable")
)
