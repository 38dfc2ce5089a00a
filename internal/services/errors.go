package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

// Error kinds surfaced by the ledger core. Callers match them with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrConflict          = errors.New("conflict")
	ErrPersistence       = errors.New("persistence failure")
	ErrRateLimited       = errors.New("rate limit exceeded")
)

// Specific causes, each wrapping one of the kinds above.
var (
	ErrInvalidAmount     = fmt.Errorf("%w: amount must be a positive number with at most 2 decimal places", ErrValidation)
	ErrInvalidType       = fmt.Errorf("%w: type must be deposit or withdraw", ErrValidation)
	ErrEmptyName         = fmt.Errorf("%w: book name is required", ErrValidation)
	ErrNameTooLong       = fmt.Errorf("%w: book name must be at most %d characters", ErrValidation, maxBookNameLen)
	ErrNoteTooLong       = fmt.Errorf("%w: note must be at most %d characters", ErrValidation, maxNoteLen)
	ErrSelfTransfer      = fmt.Errorf("%w: cannot transfer to the same book", ErrValidation)
	ErrInvalidDateRange  = fmt.Errorf("%w: start date must not be after end date", ErrValidation)
	ErrBIDSpaceExhausted = fmt.Errorf("%w: could not allocate a unique BID", ErrConflict)
)

// Postgres error codes the core reacts to.
const (
	pqUniqueViolation      = "23505"
	pqForeignKeyViolation  = "23503"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqLockNotAvailable     = "55P03"
)

// classifyStoreError maps a raw database error onto an error kind.
// Errors that already carry a kind pass through unchanged.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrInsufficientFunds, ErrConflict, ErrPersistence, ErrRateLimited} {
		if errors.Is(err, kind) {
			return err
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqSerializationFailure, pqDeadlockDetected, pqLockNotAvailable:
			return fmt.Errorf("%w: %w", ErrConflict, err)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// StatusCode maps a service error onto the HTTP status returned to clients.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show a client for err.
// Persistence details stay in the logs.
func PublicMessage(err error) string {
	if StatusCode(err) >= http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
