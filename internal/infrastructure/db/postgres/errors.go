package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// conflictErr maps a unique-constraint violation to the given sentinel so
// handlers can answer 409 without inspecting driver errors. Other errors
// pass through unchanged.
func conflictErr(err, sentinel error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return sentinel
	}
	return err
}
