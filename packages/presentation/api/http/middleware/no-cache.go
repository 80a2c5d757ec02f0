package middleware

import "github.com/labstack/echo/v4"

// Prevents caching of responses by browsers and proxies.
// List responses are cached by the service itself and may differ per request.
func NoCache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		h := ctx.Response().Header()

		h.Set("Cache-Control", "no-store, max-age=0")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")

		return next(ctx)
	}
}
