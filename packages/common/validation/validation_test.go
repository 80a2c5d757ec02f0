package validation

import (
	Error "hoa/packages/common/errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resident struct {
	Email string `json:"email" validate:"required,rfc5322"`
	Name  string `json:"name" validate:"required,max=5"`
}

func TestStruct(t *testing.T) {
	cases := []struct {
		name     string
		value    resident
		expected string
	}{
		{"valid", resident{"jane@example.com", "Jane"}, ""},
		{"missing email", resident{"", "Jane"}, "Field 'email' is required"},
		{"invalid email", resident{"jane@", "Jane"}, "Field 'email' must be a valid E-Mail"},
		{"too long", resident{"jane@example.com", "Janet Doe"}, "Field 'name' is too long (max 5)"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Struct(&c.value)

			if c.expected == "" {
				assert.Nil(t, err)
				return
			}

			require.NotNil(t, err)
			assert.Equal(t, c.expected, err.Error())
			assert.Equal(t, http.StatusBadRequest, err.Status())
		})
	}
}

func TestEmail(t *testing.T) {
	assert.Nil(t, Email("board@oak-hills.org"))
	assert.Equal(t, Error.NoValue, Email("  "))
	assert.Equal(t, Error.InvalidValue, Email("board@"))
}

func TestUUID(t *testing.T) {
	id, err := UUID("4f1c2a0e-8a9b-4c3d-9e8f-1a2b3c4d5e6f")
	assert.Nil(t, err)
	assert.Equal(t, "4f1c2a0e-8a9b-4c3d-9e8f-1a2b3c4d5e6f", id.String())

	_, err = UUID("")
	assert.Equal(t, Error.NoValue, err)

	_, err = UUID("42")
	assert.Equal(t, Error.InvalidValue, err)
}
