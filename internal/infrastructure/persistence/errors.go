package persistence

import (
	"errors"
	"strings"

	"github.com/devicedesk/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes the unit of work translates
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateError maps storage failures onto the domain errors callers act
// on. Errors it does not recognise are returned unchanged. The original
// error stays reachable through errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return notUnique(err)
		case pgForeignKeyViolation, pgCheckViolation:
			return constraintViolation(err)
		}
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return notUnique(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return constraintViolation(err)
	}

	// SQLite reports CHECK failures without an extended code the driver maps
	if msg := err.Error(); strings.Contains(msg, "CHECK constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return constraintViolation(err)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return notUnique(err)
	}

	return err
}

func notUnique(cause error) error {
	recordWriteConflict("unique")
	return shared.WrapDomainError(shared.CodeNotUnique, shared.ErrNotUnique.Message, cause)
}

func constraintViolation(cause error) error {
	recordWriteConflict("constraint")
	return shared.WrapDomainError(shared.CodeConstraintViolation, shared.ErrConstraintViolation.Message, cause)
}
