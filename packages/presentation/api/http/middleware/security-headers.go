package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const docsPathPrefix = "/docs"

// Swagger UI needs inline scripts and styles.
var docsCSP = strings.Join([]string{
	"default-src 'self'",
	"script-src 'self' 'unsafe-inline' 'unsafe-eval'",
	"style-src 'self' 'unsafe-inline'",
	"img-src 'self' data:",
	"font-src 'self'",
	"connect-src 'self'",
	"frame-ancestors 'none'",
	"form-action 'self'",
	"base-uri 'self'",
}, "; ")

// API serves only JSON, so nothing may be loaded or executed.
var apiCSP = strings.Join([]string{
	"default-src 'none'",
	"script-src 'none'",
	"frame-ancestors 'none'",
	"form-action 'none'",
	"base-uri 'none'",
}, "; ")

var securityHeaders = map[string]string{
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	"X-Content-Type-Options":    "nosniff",
	"X-Frame-Options":           "DENY",
	"X-XSS-Protection":          "1; mode=block",
	"Referrer-Policy":           "no-referrer",
	"Permissions-Policy":        "accelerometer=(), camera=(), geolocation=(), microphone=(), usb=()",
}

func SecurityHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		h := ctx.Response().Header()

		for k, v := range securityHeaders {
			h.Set(k, v)
		}

		// ctx.Path() is empty before routing, so check the raw path
		if strings.HasPrefix(ctx.Request().URL.Path, docsPathPrefix) {
			h.Set("Content-Security-Policy", docsCSP)
		} else {
			h.Set("Content-Security-Policy", apiCSP)
		}

		return next(ctx)
	}
}
