package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRateNotFound indicates that no exchange rate covers the requested
// currency and date. Callers must treat this as "cannot price in this
// currency on this date"; a fallback rate is never invented.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrInvalidRuleConfig flags a pricing rule whose price type has no matching
// amount or percentage. Resolution still returns a safe default; the caller
// is expected to log this as a data-quality warning.
var ErrInvalidRuleConfig = errors.New("invalid rule configuration")

// NewNotFoundError wraps ErrNotFound with a contextual message.
func NewNotFoundError(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}
