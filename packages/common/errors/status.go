package errs

import (
	"errors"
	"fmt"
	"net/http"
)

type Status struct {
	status  int
	message string
}

func (e *Status) Error() string {
	return e.message
}

func (e *Status) Status() int {
	return e.status
}

type errorSide string

const (
	ClientSide errorSide = "client"
	ServerSide errorSide = "server"
)

// Side returns whether the status represents a client or server error.
//
// Returns ClientSide for status codes 400-499.
//
// Returns ServerSide for status codes 500-599.
//
// Panics if the status isn't in either of these ranges.
func (e *Status) Side() errorSide {
	if e.status > 399 && e.status < 500 {
		return ClientSide
	}
	if e.status > 499 && e.status < 600 {
		return ServerSide
	}
	panic(fmt.Sprintf("invalid error status range: must be between 400 and 599, but got - %d", e.status))
}

// Creates new status error.
// Status must be between 100 and 599 - any other value will cause panic.
func NewStatusError(message string, status int) *Status {
	if status < 100 || status > 599 {
		panic(fmt.Sprintf("invalid error status range: must be between 100 and 599, but got - %d", status))
	}
	return &Status{status, message}
}

// Any error that knows which HTTP status it maps to.
type StatusCoder interface {
	error
	Status() int
}

func IsStatusError(err error) (bool, *Status) {
	var e *Status
	is := errors.As(err, &e)

	return is, e
}

// Converts any error to *Status.
// Errors that implement StatusCoder keep their status and message,
// everything else becomes StatusInternalError.
func ToStatus(err error) *Status {
	if err == nil {
		return nil
	}
	if is, e := IsStatusError(err); is {
		return e
	}

	var coder StatusCoder
	if errors.As(err, &coder) {
		return NewStatusError(coder.Error(), coder.Status())
	}

	return StatusInternalError
}

var StatusInternalError = NewStatusError(
	"Internal Server Error",
	http.StatusInternalServerError,
)

var StatusNotFound = NewStatusError(
	"Requested resource wasn't found",
	http.StatusNotFound,
)

var StatusTimeout = NewStatusError(
	"Timeout exceeded",
	http.StatusRequestTimeout,
)

var StatusUnauthorized = NewStatusError(
	"You are not authorized",
	http.StatusUnauthorized,
)

var StatusForbidden = NewStatusError(
	"You don't have permission to perform this action",
	http.StatusForbidden,
)

var StatusServiceUnavailable = NewStatusError(
	"Service temporarily unavailable",
	http.StatusServiceUnavailable,
)
