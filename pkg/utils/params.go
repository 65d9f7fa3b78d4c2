package utils

import (
	"strconv"

	"github.com/GlebRadaev/commerce/internal/apperr"
)

// ParseID reads a positive integer identifier from a path or query value.
func ParseID(raw, field string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, apperr.New(apperr.KindValidation, field+" must be a positive integer").With(field, raw)
	}
	return id, nil
}

// RequireID reports a validation error for a missing or non-positive id taken from a body.
func RequireID(id int, field string) error {
	if id < 1 {
		return apperr.New(apperr.KindValidation, field+" must be a positive integer").With(field, id)
	}
	return nil
}
