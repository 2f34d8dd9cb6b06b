package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/lexiplay/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// constraintErrors maps integrity violations to the store error they surface as.
var constraintErrors = map[string]error{
	uniqueViolationCode:     store.ErrDuplicate,
	foreignKeyViolationCode: store.ErrInvalidEntity,
	checkViolationCode:      store.ErrInvalidEntity,
	notNullViolationCode:    store.ErrInvalidEntity,
}

// MapError translates driver errors into store errors, keeping the original
// text for the logs. Unrecognized errors are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	target, ok := constraintErrors[pgErr.Code]
	if !ok {
		return err
	}

	subject := pgErr.ConstraintName
	if subject == "" {
		subject = pgErr.ColumnName
	}
	if subject == "" {
		return fmt.Errorf("%w: %v", target, err)
	}
	return fmt.Errorf("%w (%s): %v", target, subject, err)
}

// IsForeignKeyViolation reports whether err is a foreign key violation. For
// the stores in this package it means the referenced child does not exist.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
