package sieve

import (
	"bytes"
	"cmp"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var errInvalidValue = errors.New("invalid value")

// Parses raw filter value into the Go type of the kind.
func parseValue(kind Kind, raw string) (any, error) {
	switch kind {
	case String:
		return raw, nil
	case UUID:
		return uuid.Parse(raw)
	case Int:
		return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	case Float:
		return strconv.ParseFloat(strings.TrimSpace(raw), 64)
	case Bool:
		return strconv.ParseBool(strings.TrimSpace(raw))
	case Time:
		raw = strings.TrimSpace(raw)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, errInvalidValue
	}
	return nil, errInvalidValue
}

// Compares two non-nil values of the same kind.
func compare(kind Kind, a any, b any) int {
	switch kind {
	case String:
		return strings.Compare(a.(string), b.(string))
	case UUID:
		x, y := a.(uuid.UUID), b.(uuid.UUID)
		return bytes.Compare(x[:], y[:])
	case Int:
		return cmp.Compare(a.(int64), b.(int64))
	case Float:
		return cmp.Compare(a.(float64), b.(float64))
	case Bool:
		x, y := a.(bool), b.(bool)
		if x == y {
			return 0
		}
		if !x {
			return -1
		}
		return 1
	case Time:
		return a.(time.Time).Compare(b.(time.Time))
	}
	panic("sieve: can't compare values of unknown kind")
}

// Same as compare, but NULL (nil) is greater than any value,
// so NULLs go last in ascending order and first in descending (as in PostgreSQL).
func compareNullable(kind Kind, a any, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return compare(kind, a, b)
}

// Text representation of value, used by pattern operators.
func text(kind Kind, v any) string {
	if kind == UUID {
		return v.(uuid.UUID).String()
	}
	return v.(string)
}
