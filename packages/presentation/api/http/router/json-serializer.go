package router

import (
	"hoa/packages/common/encoding/json"
	"hoa/packages/presentation/api/http/response"

	"github.com/labstack/echo/v4"
)

// echo.JSONSerializer backed by json-iterator.
type serializer struct{}

func (serializer) Serialize(c echo.Context, v any, indent string) error {
	enc := json.NewEncoder(c.Response())

	if indent != "" {
		enc.SetIndent("", indent)
	}

	return enc.Encode(v)
}

// Malformed bodies are reported as 400, decoding error is kept as internal error for logs.
func (serializer) Deserialize(c echo.Context, v any) error {
	if err := json.NewDecoder(c.Request().Body).Decode(v); err != nil {
		return response.FailedToDecodeRequestBody.WithInternal(err)
	}
	return nil
}
