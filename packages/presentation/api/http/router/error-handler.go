package router

import (
	"errors"
	Error "hoa/packages/common/errors"
	"hoa/packages/core/sieve"
	controller "hoa/packages/presentation/api/http/controllers"
	"hoa/packages/presentation/api/http/request"
	"hoa/packages/presentation/api/http/response"
	"net/http"

	"github.com/labstack/echo/v4"
)

func handleHttpError(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	reqMeta := request.FindMetadata(ctx)

	if parseErr, ok := sieve.IsParseError(err); ok {
		controller.Logger.Debug("Invalid query: "+parseErr.Error(), reqMeta)

		respond(ctx, parseErr.Status(), response.ParseError{
			Error:    http.StatusText(parseErr.Status()),
			Message:  parseErr.Error(),
			Param:    parseErr.Param,
			Field:    parseErr.Field,
			Token:    parseErr.Token,
			Expected: parseErr.Expected,
		})
		return
	}

	code := http.StatusInternalServerError
	message := "Internal Server Error"

	var httpErr *echo.HTTPError

	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	} else if is, e := Error.IsStatusError(err); is {
		code = e.Status()
		message = e.Error()
	}

	status := http.StatusText(code)

	if code >= http.StatusInternalServerError {
		controller.Logger.Error(message, err.Error(), reqMeta)
	} else {
		controller.Logger.Debug(status+": "+message, reqMeta)
	}

	respond(ctx, code, response.Error{
		Error:   status,
		Message: message,
	})
}

func respond(ctx echo.Context, code int, body any) {
	var err error

	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(code)
	} else {
		err = ctx.JSON(code, body)
	}

	if err != nil {
		controller.Logger.Error("Failed to send error response", err.Error(), request.FindMetadata(ctx))
	}
}
