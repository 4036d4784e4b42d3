package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Reason     string `json:"reason"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Reason, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Reason)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, reason string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Reason:     reason,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, reason string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Reason:     reason,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Request Boundary (REQ) ----

// ErrBadRequest covers malformed JSON, missing fields and invalid value types.
// Detected before any store access.
func ErrBadRequest() *AppError {
	return New("REQ_001", "bad request", http.StatusBadRequest)
}

// ---- Ledger Business Logic (LED) ----

func ErrAccountNotFound() *AppError {
	return New("LED_001", "uuid not found", http.StatusNotFound)
}

func ErrInactiveAccount() *AppError {
	return New("LED_002", "status is inactive", http.StatusForbidden)
}

func ErrBalanceTooLow() *AppError {
	return New("LED_003", "balance too low", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "internal server error", http.StatusInternalServerError, err)
}
