package sieve

import (
	"errors"
	"net/http"
	"strings"
)

const (
	FilterParam   = "filters"
	SortParam     = "sorts"
	PageParam     = "page"
	PageSizeParam = "pageSize"
)

// Malformed filter, sort or paging parameter.
// Always caused by client, so maps to 400 Bad Request.
type ParseError struct {
	// Query parameter which contains invalid token: filters, sorts, page or pageSize.
	Param string
	// Raw token as it was received.
	Token string
	// Field name, empty if token has no field or it can't be extracted.
	Field  string
	Reason string
	// Accepted values (e.g. operator tokens), may be empty.
	Expected []string
}

func (e *ParseError) Error() string {
	msg := "invalid " + e.Param + " '" + e.Token + "': " + e.Reason

	if e.Field != "" {
		msg += " (field '" + e.Field + "')"
	}
	if len(e.Expected) != 0 {
		msg += "; expected one of: " + strings.Join(e.Expected, " ")
	}

	return msg
}

func (e *ParseError) Status() int {
	return http.StatusBadRequest
}

func IsParseError(err error) (*ParseError, bool) {
	var e *ParseError
	ok := errors.As(err, &e)
	return e, ok
}

func newFilterError(token, field, reason string) *ParseError {
	return &ParseError{Param: FilterParam, Token: token, Field: field, Reason: reason}
}

func newSortError(token, field, reason string) *ParseError {
	return &ParseError{Param: SortParam, Token: token, Field: field, Reason: reason}
}
