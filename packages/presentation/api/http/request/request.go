package request

import (
	"fmt"
	"hoa/packages/common/logger"
	transport "hoa/packages/presentation/api/http"

	"github.com/labstack/echo/v4"
	"github.com/mileusna/useragent"
)

const metaKey = "req_meta"

// Short description of the client, e.g. "Firefox 126.0 (Linux)".
func describeClient(rawUserAgent string) string {
	if rawUserAgent == "" {
		return ""
	}

	ua := useragent.Parse(rawUserAgent)

	if ua.Name == "" {
		return rawUserAgent
	}

	client := ua.Name
	if ua.Version != "" {
		client += " " + ua.Version
	}
	if ua.Bot {
		client += " (bot)"
	} else if ua.OS != "" {
		client += " (" + ua.OS + ")"
	}

	return client
}

func newMeta(ctx echo.Context) logger.Meta {
	req := ctx.Request()

	requestID := req.Header.Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = ctx.Response().Header().Get(echo.HeaderXRequestID)
	}

	return logger.Meta{
		"addr":       ctx.RealIP(),
		"method":     req.Method,
		"path":       req.URL.Path,
		"user_agent": describeClient(req.UserAgent()),
		"request_id": requestID,
	}
}

// This middleware must be applied to the router
// for the all functions in this package to work correctly.
// Must go after echo's RequestID middleware to catch generated ids.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ctx.Set(metaKey, newMeta(ctx))

		return next(ctx)
	}
}

// Retrieves metadata from the context.
// Will panic if request.Middleware wasn't applied to the router.
func GetMetadata(ctx echo.Context) logger.Meta {
	switch m := ctx.Get(metaKey).(type) {
	case logger.Meta:
		return m
	case nil:
		transport.Logger.Panic(
			"Failed to get metadata from context",
			"Request meta wasn't set (check if middleware applied correctly)",
			newMeta(ctx),
		)
		return nil
	default:
		transport.Logger.Panic(
			"Failed to get metadata from context",
			fmt.Sprintf("Request meta has invalid type. Expected logger.Meta, but got %T", m),
			newMeta(ctx),
		)
		return nil
	}
}

// Same as GetMetadata, but returns nil instead of panic if meta wasn't set.
func FindMetadata(ctx echo.Context) logger.Meta {
	m, _ := ctx.Get(metaKey).(logger.Meta)
	return m
}

// Attaches id of the authenticated user to the request metadata.
// Does nothing if metadata wasn't set.
func SetUserID(ctx echo.Context, userID string) {
	if m := FindMetadata(ctx); m != nil {
		ctx.Set(metaKey, m.With("user_id", userID))
	}
}
