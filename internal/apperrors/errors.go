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

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInvalidRecord indicates an invoice record that cannot be aggregated or imported.
var ErrInvalidRecord = errors.New("invalid invoice record")

// ErrNotConfigured indicates an optional integration that has no configuration.
var ErrNotConfigured = errors.New("integration not configured")

// AppError carries an HTTP-ish status code next to the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// RecordError identifies the invoice record responsible for a failure.
type RecordError struct {
	InvoiceID string
	Reason    string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("invoice %q: %s", e.InvoiceID, e.Reason)
}

// Unwrap lets callers match RecordError with errors.Is(err, ErrInvalidRecord).
func (e *RecordError) Unwrap() error {
	return ErrInvalidRecord
}

// NewRecordError returns a RecordError for the given invoice id.
func NewRecordError(invoiceID, reason string) error {
	return &RecordError{InvoiceID: invoiceID, Reason: reason}
}
