package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/devicedesk/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	unknown := errors.New("connection reset by peer")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, shared.ErrNotUnique},
		{"pg foreign key violation", &pgconn.PgError{Code: "23503"}, shared.ErrConstraintViolation},
		{"pg check violation", &pgconn.PgError{Code: "23514"}, shared.ErrConstraintViolation},
		{"wrapped pg unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), shared.ErrNotUnique},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, shared.ErrNotUnique},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, shared.ErrConstraintViolation},
		{"gorm check", gorm.ErrCheckConstraintViolated, shared.ErrConstraintViolation},
		{"sqlite check", errors.New("CHECK constraint failed: device_type"), shared.ErrConstraintViolation},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), shared.ErrConstraintViolation},
		{"sqlite unique", errors.New("UNIQUE constraint failed: device.type"), shared.ErrNotUnique},
		{"concurrency conflict", shared.ErrConcurrencyConflict, shared.ErrConcurrencyConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "cause stays reachable")
		})
	}

	t.Run("unknown errors pass through unchanged", func(t *testing.T) {
		assert.Same(t, unknown, translateError(unknown))
		assert.Equal(t, context.Canceled, translateError(context.Canceled))

		other := &pgconn.PgError{Code: "40001"}
		assert.Same(t, other, translateError(other))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translateError(nil))
	})

	t.Run("messages", func(t *testing.T) {
		assert.Equal(t, "Record is not Unique.", translateError(gorm.ErrDuplicatedKey).Error())
		assert.Equal(t, "Constraint Check Violation.", translateError(gorm.ErrForeignKeyViolated).Error())
	})
}

func TestSaveResult(t *testing.T) {
	assert.Equal(t, "not_unique", saveResult(translateError(gorm.ErrDuplicatedKey)))
	assert.Equal(t, "constraint_violation", saveResult(translateError(gorm.ErrForeignKeyViolated)))
	assert.Equal(t, "concurrency_conflict", saveResult(shared.ErrConcurrencyConflict))
	assert.Equal(t, "error", saveResult(errors.New("boom")))
}
