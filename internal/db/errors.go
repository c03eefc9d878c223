package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced game, player or present
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation is returned when a write would break a data
	// invariant: a blank image-list element, a foreign key outside the
	// game, a malformed steal provenance pair.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrConflict is returned when concurrent transactions contend and
	// the storage engine aborts one of them. Safe to retry.
	ErrConflict = errors.New("transaction conflict")
)

// Postgres error codes that matter to the taxonomy above.
const (
	pgForeignKeyViolation  = "23503"
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
	pgNotNullViolation     = "23502"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// translate maps gorm and Postgres driver errors onto the package sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation, pgUniqueViolation, pgCheckViolation, pgNotNullViolation:
			return fmt.Errorf("%w: %s", ErrConstraintViolation, pgErr.Message)
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.Message)
		}
	}
	return err
}
