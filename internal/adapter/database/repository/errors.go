package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"todolist/internal/core/domain"
)

const pgUniqueViolation = "23505"

// mapError translates driver failures into the core taxonomy at the store
// boundary.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}

	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	// mattn/go-sqlite3 reports constraint failures by message; matching on it
	// avoids tying this package to a second driver-specific error type.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
