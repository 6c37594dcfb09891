package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ServiceError is the error type surfaced by every service operation.
type ServiceError struct {
	Code    int    // error code, mirrors HTTP semantics
	Message string // operator-facing message
	Detail  string // diagnostic detail passed through from the underlying store
	Err     error  // original error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the errors.Unwrap interface.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Error codes.
const (
	ErrCodeBadRequest  = 400
	ErrCodeNotFound    = 404
	ErrCodeServerError = 500
	ErrCodeUnavailable = 503
)

// NewNotFoundError creates a not-found error for a resource id.
func NewNotFoundError(resource string, id int64) error {
	return &ServiceError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf(ErrRecordNotFoundMsg, resource, id),
	}
}

// NewValidationError creates a caller-recoverable validation error.
func NewValidationError(format string, args ...interface{}) error {
	return &ServiceError{
		Code:    ErrCodeBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewUnavailableError creates a data-unavailable error. The underlying
// store's message is kept verbatim in Detail for operator screens.
func NewUnavailableError(message string, err error) error {
	e := &ServiceError{
		Code:    ErrCodeUnavailable,
		Message: message,
		Err:     err,
	}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code == ErrCodeNotFound
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var serviceErr *ServiceError
	return errors.As(err, &serviceErr) && serviceErr.Code == ErrCodeBadRequest
}

// IsUnavailable reports whether err is a data-unavailable error.
func IsUnavailable(err error) bool {
	var serviceErr *ServiceError
	return errors.As(err, &serviceErr) && serviceErr.Code == ErrCodeUnavailable
}

// HandleDBError maps a gorm error to the service taxonomy.
func HandleDBError(err error, resource string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(resource, id)
	}
	return NewUnavailableError(fmt.Sprintf("database error when operating %s", resource), err)
}
