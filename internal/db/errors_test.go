package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_professional_shop_email"})
	exclusion := &pgconn.PgError{Code: "23P01", ConstraintName: AppointmentOverlapConstraint}
	fk := &pgconn.PgError{Code: "23503"}
	badUUID := &pgconn.PgError{Code: "22P02"}
	other := errors.New("boom")

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsExclusionViolation(unique))
	assert.Equal(t, "idx_professional_shop_email", ConstraintName(unique))

	assert.True(t, IsExclusionViolation(exclusion))
	assert.Equal(t, AppointmentOverlapConstraint, ConstraintName(exclusion))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsInvalidText(badUUID))
	assert.False(t, IsInvalidText(fk))

	assert.False(t, IsUniqueViolation(other))
	assert.False(t, IsForeignKeyViolation(nil))
	assert.Empty(t, ConstraintName(other))
}
