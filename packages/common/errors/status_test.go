package errs

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type coded struct{}

func (coded) Error() string { return "bad token" }
func (coded) Status() int   { return http.StatusBadRequest }

func TestToStatus(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToStatus(nil))
	})

	t.Run("status error is returned as is", func(t *testing.T) {
		assert.Same(t, StatusNotFound, ToStatus(StatusNotFound))
	})

	t.Run("wrapped status error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", StatusTimeout)
		assert.Same(t, StatusTimeout, ToStatus(err))
	})

	t.Run("status coder keeps its status", func(t *testing.T) {
		s := ToStatus(coded{})
		assert.Equal(t, http.StatusBadRequest, s.Status())
		assert.Equal(t, "bad token", s.Error())
	})

	t.Run("plain error becomes internal error", func(t *testing.T) {
		assert.Same(t, StatusInternalError, ToStatus(fmt.Errorf("boom")))
	})
}

func TestSide(t *testing.T) {
	assert.Equal(t, ClientSide, StatusNotFound.Side())
	assert.Equal(t, ServerSide, StatusInternalError.Side())
	assert.Panics(t, func() { NewStatusError("ok", http.StatusOK).Side() })
	assert.Panics(t, func() { NewStatusError("nope", 42) })
}

func TestValidationDescribe(t *testing.T) {
	missing := NoValue.Describe("Path parameter 'id'", "a valid uuid")
	assert.Equal(t, http.StatusBadRequest, missing.Status())
	assert.Equal(t, "Path parameter 'id' is missing", missing.Error())

	invalid := InvalidValue.Describe("Path parameter 'id'", "a valid uuid")
	assert.Equal(t, "Path parameter 'id' must be a valid uuid", invalid.Error())

	assert.Panics(t, func() { (&Validation{"other"}).Describe("x", "y") })
}
