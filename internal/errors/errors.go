package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = errors.New("task not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering with an email that is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login with an unknown email or wrong
	// password. The message is deliberately uniform for both cases.
	ErrInvalidCredentials = errors.New("wrong email or password")

	// Ownership policy denials. One sentinel per operation so the client
	// message names what was refused.
	ErrCreateForOther   = errors.New("you can only create tasks assigned to yourself")
	ErrViewForbidden    = errors.New("not authorized to view this task")
	ErrUpdateForbidden  = errors.New("not authorized to update this task")
	ErrDeleteForbidden  = errors.New("not authorized to delete this task")
	ErrReassignNotAdmin = errors.New("you cannot reassign tasks")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized
// collapses to a 500 with no internal detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrCreateForOther),
		errors.Is(err, ErrViewForbidden),
		errors.Is(err, ErrUpdateForbidden),
		errors.Is(err, ErrDeleteForbidden),
		errors.Is(err, ErrReassignNotAdmin):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
