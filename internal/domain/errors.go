package domain

import (
	"errors"
	"fmt"
)

// The core error taxonomy. Everything here is recoverable and surfaced to
// the calling UI as a user-facing message.
var (
	// ErrDuplicatePhone is returned when registering a phone number that
	// already belongs to a member.
	ErrDuplicatePhone = errors.New("phone number already registered")

	// ErrNotFound covers failed authentication, unknown members, unknown
	// coupons and unknown content records.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyUsed is returned when redeeming a coupon that was already
	// redeemed.
	ErrAlreadyUsed = errors.New("coupon already used")
)

// ValidationError reports a rejected input field. It unwraps to nothing;
// callers match it with errors.As.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
