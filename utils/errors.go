package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

func NewAPIErrorWithDetails(code int, message, details string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

var (
	ErrInvalidRequest = NewAPIError(http.StatusBadRequest, "Invalid request")
	ErrUnauthorized   = NewAPIError(http.StatusUnauthorized, "Unauthorized")
	ErrNotFound       = NewAPIError(http.StatusNotFound, "Resource not found")
	ErrConflict       = NewAPIError(http.StatusConflict, "Resource conflict")
	ErrInternalServer = NewAPIError(http.StatusInternalServerError, "Internal server error")
)

var (
	ErrInvalidCredentials = NewAPIError(http.StatusUnauthorized, "Invalid credentials")
	ErrInvalidToken       = NewAPIError(http.StatusUnauthorized, "Invalid token")
	ErrUserExists         = NewAPIError(http.StatusConflict, "Username or email already exists")
	ErrUserNotFound       = NewAPIError(http.StatusNotFound, "User not found")
)

var (
	ErrInvoiceNotFound    = NewAPIError(http.StatusNotFound, "Invoice not found")
	ErrInvoiceAlreadyPaid = NewAPIError(http.StatusBadRequest, "Invoice is already paid")
	ErrInvalidAmount      = NewAPIError(http.StatusBadRequest, "Invalid invoice amount")
	ErrInvoiceConflict    = NewAPIError(http.StatusConflict, "Invoice was modified concurrently")
)

var (
	ErrInvalidSignature = NewAPIError(http.StatusBadRequest, "Invalid callback signature")
)

// BadRequest wraps a downstream failure into a 400 carrying the cause.
func BadRequest(message string, err error) *APIError {
	if err == nil {
		return NewAPIError(http.StatusBadRequest, message)
	}
	return NewAPIErrorWithDetails(http.StatusBadRequest, message, err.Error())
}

// AsAPIError extracts the APIError from an error chain, falling back to a
// generic 500 so handlers never leak internal error strings.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return ErrInternalServer
}

func WrapError(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}
