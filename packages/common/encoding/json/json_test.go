package json_test

import (
	"strings"
	"testing"

	"hoa/packages/common/encoding/json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Title string `json:"title"`
	Count int    `json:"count,omitempty"`
}

func TestDecode(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p, err := json.Decode[payload](strings.NewReader(`{"title":"Pool party","count":3}`))
		require.NoError(t, err)
		assert.Equal(t, payload{Title: "Pool party", Count: 3}, p)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := json.Decode[payload](strings.NewReader(`{"title":`))
		assert.Error(t, err)
	})
}

func TestMarshalUnmarshal(t *testing.T) {
	s, err := json.MarshalString(payload{Title: "Budget"})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Budget"}`, s)

	p, err := json.Unmarshal[payload]([]byte(s))
	require.NoError(t, err)
	assert.Equal(t, "Budget", p.Title)
}
