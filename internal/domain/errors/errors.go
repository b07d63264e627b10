package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrBusinessSuspended  = errors.New("business suspended")
	ErrMembershipInactive = errors.New("membership inactive")
)

// Error codes returned to clients
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeInvalidInput  = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

func InternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, nil)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeBadRequest,
		Message: message,
		Err:     err,
	}
}

// FromError converts any error into an AppError. Sentinel domain errors keep
// their meaning; everything else is treated as internal.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound("resource not found")
	case errors.Is(err, ErrAlreadyExists):
		return Conflict("resource already exists")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadRequest):
		return BadRequest(err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, "invalid credentials", err)
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenExpired):
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, err.Error(), err)
	case errors.Is(err, ErrBusinessSuspended):
		return NewAppError(http.StatusForbidden, CodeForbidden, "business account is suspended", err)
	case errors.Is(err, ErrForbidden):
		return Forbidden("forbidden")
	case errors.Is(err, ErrMembershipInactive):
		return NewAppError(http.StatusConflict, CodeConflict, "membership is not active", err)
	default:
		return InternalError(err)
	}
}
