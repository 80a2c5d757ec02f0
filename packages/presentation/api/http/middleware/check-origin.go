package middleware

import (
	"hoa/packages/presentation/api/http/request"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
)

// Rejects state-changing requests sent from origins which aren't allowed.
// Requests without Origin header (non-browser clients) are passed.
func CheckOrigin(allowedOrigins []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			if req.Method == http.MethodGet || req.Method == http.MethodHead || req.Method == http.MethodOptions {
				return next(ctx)
			}

			origin := req.Header.Get(echo.HeaderOrigin)

			if origin != "" && !slices.Contains(allowedOrigins, "*") && !slices.Contains(allowedOrigins, origin) {
				log.Error("Invalid request origin", "Origin isn't allowed: "+origin, request.FindMetadata(ctx))
				return echo.NewHTTPError(http.StatusForbidden, "Invalid origin")
			}

			return next(ctx)
		}
	}
}
