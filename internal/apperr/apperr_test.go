package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "typed error",
			err:      New(KindOutOfStock, "out of stock"),
			expected: KindOutOfStock,
		},
		{
			name:     "wrapped typed error",
			err:      fmt.Errorf("decrease stock: %w", New(KindNotFound, "product not found")),
			expected: KindNotFound,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: KindInternal,
		},
		{
			name:     "internal wrapper",
			err:      Internal(errors.New("conn reset"), "failed to load order"),
			expected: KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestErrorDetails(t *testing.T) {
	err := New(KindDailyLimitExceeded, "daily charge limit exceeded").
		With("attemptedAmount", int64(10)).
		With("limit", int64(1_000_000))

	e, ok := As(fmt.Errorf("charge: %w", err))
	require.True(t, ok)
	assert.Equal(t, int64(10), e.Details["attemptedAmount"])
	assert.Equal(t, int64(1_000_000), e.Details["limit"])
	assert.Equal(t, "daily charge limit exceeded", e.Error())
}

func TestInternal(t *testing.T) {
	assert.NoError(t, Internal(nil, "ignored"))

	cause := errors.New("conn reset")
	err := Internal(cause, "failed to load order")
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "failed to load order: conn reset", err.Error())
	assert.True(t, Is(err, KindInternal))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindCouponExhausted, http.StatusConflict},
		{KindAlreadyProcessed, http.StatusConflict},
		{KindDuplicateIssuance, http.StatusConflict},
		{KindValidation, http.StatusBadRequest},
		{KindDailyLimitExceeded, http.StatusBadRequest},
		{KindBalanceCapExceeded, http.StatusBadRequest},
		{KindInsufficientBalance, http.StatusBadRequest},
		{KindOutOfStock, http.StatusBadRequest},
		{KindMinimumAmountNotMet, http.StatusBadRequest},
		{KindOwnershipMismatch, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindInternal, http.StatusInternalServerError},
		{Kind("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.kind))
		})
	}
}
