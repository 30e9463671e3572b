package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %v", e.UserMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Common error codes
const (
	ErrCodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeConflict             = "CONFLICT"
	ErrCodeServiceUnavailable   = "SERVICE_UNAVAILABLE"
	ErrCodeRateLimited          = "RATE_LIMITED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// missing or invalid session credential or shared secret. Never retried.
func NewAuthenticationError(technicalMessage string, err error) *AppError {
	return NewAppError(technicalMessage, MsgAuthenticationFailed, ErrCodeAuthenticationFailed, http.StatusUnauthorized, err)
}

// valid identity but insufficient role or relation predicate false. Any
// ambiguity on the authorization path lands here, not in a 5xx.
func NewAuthorizationError(technicalMessage string) *AppError {
	return NewAppError(technicalMessage, MsgForbidden, ErrCodeForbidden, http.StatusForbidden, nil)
}

func NewNotFoundError(technicalMessage, userMessage string) *AppError {
	return NewAppError(technicalMessage, userMessage, ErrCodeNotFound, http.StatusNotFound, nil)
}

func NewValidationError(technicalMessage, userMessage string, err error) *AppError {
	return NewAppError(technicalMessage, userMessage, ErrCodeValidationFailed, http.StatusUnprocessableEntity, err)
}

func NewConflictError(technicalMessage, userMessage string) *AppError {
	return NewAppError(technicalMessage, userMessage, ErrCodeConflict, http.StatusConflict, nil)
}
