package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "materiales_nombre_key"}
	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", unique)))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate key")))
	assert.False(t, IsUniqueViolation(nil))
}
