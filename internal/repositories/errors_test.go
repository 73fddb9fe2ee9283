package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"council-backend/internal/billing"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "one_open_statement_per_lease"}

	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", unique)),
		"wrapped driver errors must still be recognized")

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}),
		"foreign-key violations are not conflicts")
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}

func TestUniqueViolationSurfacesAsConflict(t *testing.T) {
	// GIVEN: the driver reports the partial unique index on OPEN statements
	// WHEN: the write path maps it the way Create does
	// THEN: callers see a ConflictError, not a bare driver error

	err := error(&pgconn.PgError{Code: "23505", ConstraintName: "one_open_statement_per_lease"})
	if isUniqueViolation(err) {
		err = billing.Conflictf("statement already open for lease %d", 7)
	}

	var cerr *billing.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Error(), "statement already open for lease 7")
}
