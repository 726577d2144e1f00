package xerrors

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// AppError is the error type used across the suite and the stub server.
// It carries the business code that maps onto the wire envelope, an
// optional wrapped cause, and metadata useful when diagnosing a failed run.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`

	// Fields holds per-field detail for validation errors; it is rendered
	// into the envelope's data object.
	Fields map[string]string `json:"fields,omitempty"`

	Timestamp time.Time `json:"timestamp,omitempty"`
	Retryable bool      `json:"retryable,omitempty"`
}

// Error implements the standard error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code so callers can use errors.Is with a sentinel
// built via FromCode.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if errors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

// LogValue implements slog.LogValuer so structured logs render the error
// without double serialization.
func (e *AppError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", string(e.Code)),
		slog.String("message", e.Message),
		slog.Bool("retryable", e.Retryable),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.Any("underlying_error", e.Err))
	}
	for field, msg := range e.Fields {
		attrs = append(attrs, slog.String("field_"+field, msg))
	}
	return slog.GroupValue(attrs...)
}

// WithField attaches per-field validation detail.
func (e *AppError) WithField(field, message string) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
	return e
}

// HTTPStatus returns the HTTP status paired with the error's code.
func (e *AppError) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// New creates an AppError with an explicit message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Retryable: isRetryableByCode(code),
	}
}

// Wrap creates an AppError around an underlying cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Err = err
	return appErr
}

// FromCode creates an AppError carrying the code's default message.
func FromCode(code ErrorCode) *AppError {
	return New(code, code.Message())
}

// NewValidationError reports a request field that failed validation.
func NewValidationError(field, message string) *AppError {
	return FromCode(CodeValidationError).WithField(field, message)
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource, identifier string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found: %s", resource, identifier))
}

// NewTransportError reports a network-level failure reaching the API.
func NewTransportError(err error) *AppError {
	return Wrap(err, CodeTransportError, CodeTransportError.Message())
}

// NewUnexpectedStatusError reports a status code outside a scenario's
// expected set, keeping the raw body for diagnosis.
func NewUnexpectedStatusError(got int, want []int, body string) *AppError {
	return New(CodeUnexpectedStatus,
		fmt.Sprintf("expected status in %v, got %d (body: %s)", want, got, body))
}

// NewSchemaValidationError reports a response body that does not match the
// expected shape.
func NewSchemaValidationError(err error) *AppError {
	return Wrap(err, CodeSchemaValidation, CodeSchemaValidation.Message())
}

// CodeOf extracts the business code from an error chain, or empty string.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
