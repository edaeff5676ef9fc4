package errors

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is a generic sentinel for uniqueness/state conflicts.
	ErrConflict = errors.New("conflict")
	// ErrRetryable tags transient failures callers may retry.
	ErrRetryable = errors.New("retryable")
)

// Invalid tags an error message as input validation failure.
func Invalid(msg string) error {
	return errors.Join(ErrInvalidArgument, errors.New(strings.TrimSpace(msg)))
}

// Conflict tags an error message as a conflict.
func Conflict(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

// Classify folds infrastructure failures into the package sentinels so
// services and handlers can branch with errors.Is without importing gorm
// or pgx themselves.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrRetryable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Join(ErrNotFound, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errors.Join(ErrRetryable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return errors.Join(ErrConflict, err) // unique_violation
		case "23503":
			return errors.Join(ErrInvalidArgument, err) // foreign_key_violation
		case "40001", "40P01", "55P03":
			return errors.Join(ErrRetryable, err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return errors.Join(ErrConflict, err)
	case strings.Contains(msg, "deadlock"), strings.Contains(msg, "serialization"):
		return errors.Join(ErrRetryable, err)
	}
	return err
}
