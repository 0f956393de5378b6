// Package apperr defines the recoverable error taxonomy shared by every
// module and its mapping to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeConflict          Code = "CONFLICT"
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeNotFound          Code = "NOT_FOUND"
	CodePriceMismatch     Code = "PRICE_MISMATCH"
)

// Error carries a code alongside a human-readable message.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
}

func (e *Error) Error() string { return e.Message }

// New builds an Error with the given code and formatted message.
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(CodeUnauthorized, format, args...)
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return New(CodeInvalidArgument, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return New(CodeConflict, format, args...)
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return New(CodeInsufficientStock, format, args...)
}

func InvalidTransition(format string, args ...interface{}) *Error {
	return New(CodeInvalidTransition, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return New(CodeNotFound, format, args...)
}

func PriceMismatch(format string, args ...interface{}) *Error {
	return New(CodePriceMismatch, format, args...)
}

// CodeOf extracts the code from err, or an empty code for errors outside
// the taxonomy.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool { return CodeOf(err) == code }

// HTTPStatus maps an error to the HTTP status handlers should respond with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeUnauthorized:
		return http.StatusForbidden
	case CodeInvalidArgument, CodePriceMismatch:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeInsufficientStock, CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
