package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var errUnitRented = fmt.Errorf("%w: media unit is not available", ErrConflict)

func TestKinds(t *testing.T) {
	assert.True(t, IsValidation(Validation("days must be >= %d", 1)))
	assert.True(t, IsNotFound(NotFound("tariff not found")))
	assert.True(t, IsConflict(Conflict("already returned")))
	assert.True(t, IsConflict(errUnitRented))
	assert.True(t, IsConflict(fmt.Errorf("issue rental: %w", errUnitRented)))

	assert.False(t, IsClientError(errors.New("connection refused")))
	assert.True(t, IsClientError(Validation("x")))
	assert.Equal(t, "days must be >= 1", Validation("days must be >= %d", 1).Error())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: clients.phone")))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("record not found")))
}
