package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/flashdeck/internal/redact"
	"github.com/phrazzld/flashdeck/internal/store"
)

// SQLSTATE codes the stores react to.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// constraintErrors maps integrity violations to store sentinels.
var constraintErrors = map[string]struct {
	sentinel error
	kind     string
}{
	uniqueViolationCode:     {store.ErrDuplicate, "unique constraint"},
	foreignKeyViolationCode: {store.ErrInvalidEntity, "foreign key"},
	checkViolationCode:      {store.ErrInvalidEntity, "check constraint"},
	notNullViolationCode:    {store.ErrInvalidEntity, "not null column"},
}

// MapError translates a driver error into a store error. Anything it does not
// recognize comes back redacted, so statement values and connection strings
// never reach callers or logs.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if known, ok := constraintErrors[pgErr.Code]; ok {
			name := pgErr.ConstraintName
			if name == "" {
				name = pgErr.ColumnName
			}
			return fmt.Errorf("%w: %s %s", known.sentinel, known.kind, name)
		}
	}

	return errors.New(redact.Error(err))
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolationCode)
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolationCode)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// CheckRowsAffected returns notFound (store.ErrNotFound when nil) if an
// UPDATE or DELETE touched no rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("no result to check")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", MapError(err))
	}
	if n > 0 {
		return nil
	}
	if notFound == nil {
		return store.ErrNotFound
	}
	return notFound
}
