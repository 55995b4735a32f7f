package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"

	constraintPendingPair = "ux_invitations_pending_pair"
	constraintUserEmail   = "ux_users_email"
	constraintUserCode    = "ux_users_unique_code"
)

// isUniqueViolation reports whether err is a PostgreSQL unique violation,
// optionally restricted to a named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
