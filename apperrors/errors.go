package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is a client-facing application error. Message is safe to return to
// callers; Err holds the internal cause and is never serialized.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Validation reports a malformed request shape or out-of-range value.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// NotFound reports a missing resource.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// Forbidden reports a failed role or ownership check.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message, nil)
}

// InsufficientStock reports a requested quantity exceeding availability.
func InsufficientStock(name string, available int) *Error {
	return New(http.StatusBadRequest,
		fmt.Sprintf("Insufficient stock for %s. Available: %d", name, available), nil)
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Server error", err)
}

// Respond writes err to the gin context using the taxonomy's status code.
// Unknown error types collapse to a generic 500 with no detail leaked.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
