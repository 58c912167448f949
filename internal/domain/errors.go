package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the sentinel wrapped by every *ValidationError
	ErrValidation = errors.New("validation failed")

	// ErrInvalidInterval is returned for intervals with a missing bound or start after end
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrMalformedRecord is returned for records from a source that break the data model
	ErrMalformedRecord = errors.New("malformed record")
)

// ValidationCode is a machine-readable rejection reason
type ValidationCode string

const (
	CodeGuestNameRequired       ValidationCode = "guest_name_required"
	CodeStayDatesRequired       ValidationCode = "stay_dates_required"
	CodeCheckoutNotAfterCheckIn ValidationCode = "checkout_not_after_checkin"
	CodeRequiredFieldMissing    ValidationCode = "required_field_missing"
	CodeInvalidStatus           ValidationCode = "invalid_status"
	CodePropertyRequired        ValidationCode = "property_required"
	CodeInvalidInterval         ValidationCode = "invalid_interval"
	CodeFieldTooLong            ValidationCode = "field_too_long"
	CodeInvalidFieldName        ValidationCode = "invalid_field_name"
)

// ValidationError describes why an input was rejected before reaching the store
type ValidationError struct {
	Code  ValidationCode
	Field string
}

// NewValidationError creates a validation error for the given field
func NewValidationError(code ValidationCode, field string) *ValidationError {
	return &ValidationError{Code: code, Field: field}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Code)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrValidation, e.Code, e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AsValidationError extracts a *ValidationError from an error chain
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
