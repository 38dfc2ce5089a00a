package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), ErrNotFound},
		{"serialization failure", &pq.Error{Code: "40001"}, ErrConflict},
		{"deadlock", &pq.Error{Code: "40P01"}, ErrConflict},
		{"lock timeout", &pq.Error{Code: "55P03"}, ErrConflict},
		{"foreign key", &pq.Error{Code: "23503"}, ErrNotFound},
		{"other pq error", &pq.Error{Code: "53100"}, ErrPersistence},
		{"plain error", errors.New("connection refused"), ErrPersistence},
		{"already classified", ErrInsufficientFunds, ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyStoreError(tt.err), tt.kind)
		})
	}

	assert.NoError(t, classifyStoreError(nil))

	var pqErr *pq.Error
	assert.True(t, errors.As(classifyStoreError(&pq.Error{Code: "53100"}), &pqErr), "cause stays inspectable")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(nil))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(ErrInvalidType))
	assert.Equal(t, http.StatusNotFound, StatusCode(ErrNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusCode(ErrInsufficientFunds))
	assert.Equal(t, http.StatusConflict, StatusCode(ErrBIDSpaceExhausted))
	assert.Equal(t, http.StatusTooManyRequests, StatusCode(ErrRateLimited))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(ErrPersistence))
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(context.Canceled))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("unknown")))
}
