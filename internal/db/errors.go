package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound signals that the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrConflict signals a store-level constraint violation (duplicate key
	// or broken foreign key). The validation layer pre-checks these, but a
	// concurrent request can still win the race; the database constraint is
	// the actual guarantee and this error is how it surfaces.
	ErrConflict = errors.New("constraint violation")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// constraintErr maps Postgres constraint violations to ErrConflict and
// returns every other error unchanged.
func constraintErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation || pgErr.Code == pgForeignKeyViolation {
			return ErrConflict
		}
	}
	return err
}
