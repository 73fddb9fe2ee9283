package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (23505). The schema carries the business uniqueness rules
// (one OPEN statement per lease, one invoice per customer+period), so a
// 23505 at write time is a business conflict, not a transient fault.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
