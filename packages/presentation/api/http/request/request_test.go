package request

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hoa/packages/common/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeClient(t *testing.T) {
	cases := map[string]string{
		"": "",
		"Mozilla/5.0 (X11; Linux x86_64; rv:126.0) Gecko/20100101 Firefox/126.0": "Firefox 126.0 (Linux)",
		"Googlebot/2.1 (+http://www.google.com/bot.html)":                          "Googlebot 2.1 (bot)",
	}

	for raw, expected := range cases {
		t.Run(expected, func(t *testing.T) {
			assert.Equal(t, expected, describeClient(raw))
		})
	}
}

func TestMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/events?page=2", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)

	assert.Nil(t, FindMetadata(ctx))

	var meta logger.Meta
	handler := Middleware(func(ctx echo.Context) error {
		meta = GetMetadata(ctx)
		return nil
	})

	require.NoError(t, handler(ctx))

	assert.Equal(t, "10.0.0.7", meta["addr"])
	assert.Equal(t, http.MethodGet, meta["method"])
	assert.Equal(t, "/v1/events", meta["path"])
	assert.Equal(t, "req-1", meta["request_id"])
	assert.Equal(t, meta, FindMetadata(ctx))
}

func TestSetUserID(t *testing.T) {
	ctx := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/v1/posts", nil), httptest.NewRecorder())

	SetUserID(ctx, "ignored")
	assert.Nil(t, FindMetadata(ctx))

	handler := Middleware(func(ctx echo.Context) error {
		before := GetMetadata(ctx)

		SetUserID(ctx, "7b1f0c52-5d6e-4c43-a0a4-1d1c7a9e3f10")

		assert.Nil(t, before["user_id"])
		assert.Equal(t, "7b1f0c52-5d6e-4c43-a0a4-1d1c7a9e3f10", GetMetadata(ctx)["user_id"])
		assert.Equal(t, "/v1/posts", GetMetadata(ctx)["path"])
		return nil
	})

	require.NoError(t, handler(ctx))
}
