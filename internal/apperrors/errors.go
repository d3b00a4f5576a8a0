package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that a natural key (code, name, reference, financial year...) is already taken.
var ErrConflict = errors.New("resource already exists")

// ErrDuplicate is kept as an alias of ErrConflict for call sites that read better with it.
var ErrDuplicate = ErrConflict

// ErrBusinessRule indicates that the request is well formed but not allowed in the current state,
// e.g. approving a document that is no longer pending.
var ErrBusinessRule = errors.New("business rule violation")

// ErrForbidden indicates the acting user may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates the request carries no usable identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal is returned when an unexpected failure must not leak details to callers.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code together with the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// NewValidationError returns an AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewConflictError returns an AppError wrapping ErrConflict.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}

// NewBusinessRuleError returns an AppError wrapping ErrBusinessRule.
func NewBusinessRuleError(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, ErrBusinessRule)
}

// StatusCode maps an error chain onto the HTTP status the API should answer with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrBusinessRule):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
