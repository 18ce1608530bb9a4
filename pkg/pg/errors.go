package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToParseConfig     = errors.New("pg.invalid_connection_config")
	ErrFailedToOpenConnection  = errors.New("pg.connection_failed")
	ErrHealthcheckFailed       = errors.New("pg.healthcheck_failed")
	ErrFailedToApplyMigrations = errors.New("pg.migrations_failed")
	ErrMigrationsDirNotFound   = errors.New("pg.migrations_dir_not_found")
)

// IsNotFound reports pgx.ErrNoRows so stores can map it to their own
// not-found sentinels.
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKey reports a unique constraint violation (SQLSTATE 23505),
// raised for duplicate role assignments and permission grants.
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports a referential integrity violation
// (SQLSTATE 23503), raised when a grant references a missing role or user.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
