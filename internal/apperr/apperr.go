// Package apperr carries a stable error kind from the domain layer to the HTTP boundary.
package apperr

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

type Kind string

const (
	KindNotFound              Kind = "NotFound"
	KindValidation            Kind = "ValidationError"
	KindDailyLimitExceeded    Kind = "DailyLimitExceeded"
	KindBalanceCapExceeded    Kind = "BalanceCapExceeded"
	KindInsufficientBalance   Kind = "InsufficientBalance"
	KindOutOfStock            Kind = "OutOfStock"
	KindProductUnavailable    Kind = "ProductUnavailable"
	KindCouponExhausted       Kind = "CouponExhausted"
	KindDuplicateIssuance     Kind = "DuplicateIssuance"
	KindNotInIssuancePeriod   Kind = "NotInIssuancePeriod"
	KindIssuancePeriodExpired Kind = "IssuancePeriodExpired"
	KindCouponUnavailable     Kind = "CouponUnavailable"
	KindCouponExpired         Kind = "CouponExpired"
	KindMinimumAmountNotMet   Kind = "MinimumAmountNotMet"
	KindOwnershipMismatch     Kind = "OwnershipMismatch"
	KindAlreadyProcessed      Kind = "AlreadyProcessed"
	KindConflict              Kind = "Conflict"
	KindUnauthorized          Kind = "Unauthorized"
	KindInternal              Kind = "InternalError"
)

type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// With attaches a detail entry and returns the same error for chaining.
func (e *Error) With(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Internal hides an unexpected failure behind KindInternal, keeping the stack for logs.
func Internal(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindInternal, Message: message, cause: errors.WithStack(err)}
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports the kind of err. Errors that carry no kind are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindCouponExhausted, KindAlreadyProcessed, KindDuplicateIssuance, KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindOwnershipMismatch:
		return http.StatusForbidden
	case KindValidation,
		KindDailyLimitExceeded,
		KindBalanceCapExceeded,
		KindInsufficientBalance,
		KindOutOfStock,
		KindProductUnavailable,
		KindNotInIssuancePeriod,
		KindIssuancePeriodExpired,
		KindCouponUnavailable,
		KindCouponExpired,
		KindMinimumAmountNotMet:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
