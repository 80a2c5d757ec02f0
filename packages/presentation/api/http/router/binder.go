package router

import (
	"hoa/packages/common/encoding/json"
	"hoa/packages/presentation/api/http/response"
	"io"

	"github.com/labstack/echo/v4"
)

type binder struct{}

func (b *binder) Bind(i any, ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return response.FailedToReadRequestBody
	}

	if err := json.UnmarshalInto(body, i); err != nil {
		return response.FailedToDecodeRequestBody
	}

	return nil
}
