package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrInvalidInput = New("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized = New("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrForbidden    = New("FORBIDDEN", "Not allowed", http.StatusForbidden)
	ErrNotFound     = New("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrInternal     = New("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
	ErrConflict     = New("CONFLICT", "Resource conflict", http.StatusConflict)
)

// Wrap returns err unchanged if it already is an APIError, otherwise a new
// APIError carrying err's text as details.
func Wrap(err error, code, message string, status int) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return New(code, message, status, err.Error())
}

// WithDetails copies base and attaches details.
func WithDetails(base *APIError, details string) *APIError {
	e := *base
	e.Details = details
	return &e
}

// Write sends err as a JSON APIError response. Errors that are not an
// APIError become ErrInternal.
func Write(w http.ResponseWriter, err error) {
	apiErr := Wrap(err, ErrInternal.Code, ErrInternal.Message, ErrInternal.Status)
	if apiErr.Status >= 500 {
		log.Printf("Server error %s (Details: %s)", apiErr.Error(), apiErr.Details)
		apiErr = ErrInternal
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(apiErr)
}
