package validation

import (
	Error "hoa/packages/common/errors"
	"strings"

	"github.com/google/uuid"
)

// Parses v as uuid.
// Returns Error.NoValue if v is empty and Error.InvalidValue if it's not a valid uuid.
func UUID(v string) (uuid.UUID, *Error.Validation) {
	if strings.TrimSpace(v) == "" {
		return uuid.Nil, Error.NoValue
	}

	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, Error.InvalidValue
	}

	return id, nil
}
