package middleware

import (
	"hoa/packages/presentation/api/http/request"
	"hoa/packages/presentation/api/http/response"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func rateLimiterIdentifierExtractor(ctx echo.Context) (string, error) {
	return ctx.RealIP(), nil
}

func rateLimiterDenyHandler(retryAfter time.Duration) func(ctx echo.Context, id string, err error) error {
	seconds := strconv.Itoa(max(1, int(math.Ceil(retryAfter.Seconds()))))

	return func(ctx echo.Context, id string, err error) error {
		ctx.Response().Header().Set("Retry-After", seconds)

		reqMeta := request.FindMetadata(ctx)

		switch GetSensitivity(ctx) {
		case InsignificantEndpoint:
			log.Trace("Request blocked by rate limiter", reqMeta)
		case DefaultEndpoint:
			log.Info("Request blocked by rate limiter", reqMeta)
		case SensitiveEndpoint:
			log.Warning("Request blocked by rate limiter", reqMeta)
		}

		return ctx.JSON(
			http.StatusTooManyRequests,
			response.Message{
				Message: "Too many requests",
			},
		)
	}
}

// Limits requests per client IP to rps requests per second with specified burst.
// Returns nil if rps isn't positive (rate limiting is disabled).
func RateLimiter(rps float64, burst int) echo.MiddlewareFunc {
	if rps <= 0 {
		return nil
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(rps),
			Burst:     max(burst, 1),
			ExpiresIn: time.Minute * 3,
		}),
		DenyHandler:         rateLimiterDenyHandler(time.Duration(float64(time.Second) / rps)),
		IdentifierExtractor: rateLimiterIdentifierExtractor,
	})
}

// Stricter limit for writes: 30 requests per minute per client.
func WriteRateLimiter() echo.MiddlewareFunc {
	window := time.Minute

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Every(window / 30),
			Burst:     5,
			ExpiresIn: window * 2,
		}),
		DenyHandler:         rateLimiterDenyHandler(window / 30),
		IdentifierExtractor: rateLimiterIdentifierExtractor,
	})
}
