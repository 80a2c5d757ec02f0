package errs

import (
	"net/http"
)

// Result of validating a single input value: either it's missing or malformed.
// Only NoValue and InvalidValue exist, compare errors with ==.
type Validation struct {
	message string
}

func (e *Validation) Error() string {
	return e.message
}

// Converts validation error to 400 status error.
// Panics if error is neither NoValue nor InvalidValue.
func (e *Validation) ToStatus(noValueMsg string, invalidValueMsg string) *Status {
	switch e {
	case NoValue:
		return NewStatusError(noValueMsg, http.StatusBadRequest)
	case InvalidValue:
		return NewStatusError(invalidValueMsg, http.StatusBadRequest)
	}
	panic("unknown validation error: " + e.message)
}

// Same as ToStatus, but builds messages from subject,
// e.g. "Path parameter 'id' is missing" or "Path parameter 'id' must be a valid uuid".
func (e *Validation) Describe(subject string, expected string) *Status {
	return e.ToStatus(subject+" is missing", subject+" must be "+expected)
}

var (
	NoValue      = &Validation{"validation error: no value"}
	InvalidValue = &Validation{"validation error: invalid value"}
)
