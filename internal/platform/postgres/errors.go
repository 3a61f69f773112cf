package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phrazzld/scry-decks/internal/store"
)

// SQLSTATE codes translated by MapError.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// constraintViolation describes how one SQLSTATE maps onto the store
// sentinels. Kind is empty for violations reported without extra context.
type constraintViolation struct {
	sentinel error
	kind     string
}

var violations = map[string]constraintViolation{
	uniqueViolationCode:     {sentinel: store.ErrDuplicate},
	foreignKeyViolationCode: {sentinel: store.ErrInvalidEntity, kind: "foreign key violation"},
	checkViolationCode:      {sentinel: store.ErrInvalidEntity, kind: "check constraint violation"},
	notNullViolationCode:    {sentinel: store.ErrInvalidEntity, kind: "not null violation"},
}

// MapError translates sql.ErrNoRows and constraint violations into store
// sentinels. The original error stays in the message; anything else is
// returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	pgErr := asPgError(err)
	if pgErr == nil {
		return err
	}
	v, ok := violations[pgErr.Code]
	if !ok {
		return err
	}
	if v.kind == "" {
		return fmt.Errorf("%w: %v", v.sentinel, err)
	}

	// Not-null violations name a column; the others name a constraint.
	subject := pgErr.ConstraintName
	if pgErr.Code == notNullViolationCode {
		subject = pgErr.ColumnName
	}
	return fmt.Errorf("%w: %s (%s): %v", v.sentinel, v.kind, subject, err)
}

func asPgError(err error) *pgconn.PgError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr
	}
	return nil
}

func hasCode(err error, code string) bool {
	pgErr := asPgError(err)
	return pgErr != nil && pgErr.Code == code
}

// IsForeignKeyViolation reports whether err carries SQLSTATE 23503.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolationCode)
}

// CheckRowsAffected returns notFound, or store.ErrNotFound when notFound is
// nil, if an UPDATE or DELETE touched no row.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if notFound == nil {
		return store.ErrNotFound
	}
	return notFound
}
