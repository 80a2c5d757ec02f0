package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
)

type EndpointSensitivity int

const (
	// Reads
	InsignificantEndpoint EndpointSensitivity = iota
	// Writes
	DefaultEndpoint
	// Board-only operations
	SensitiveEndpoint
)

func (s EndpointSensitivity) Validate() error {
	if s < InsignificantEndpoint || s > SensitiveEndpoint {
		return errors.New("endpoint sensitivity doesn't exist")
	}
	return nil
}

const sensitivityKey = "endpoint_sensitivity"

func Sensitivity(s EndpointSensitivity) echo.MiddlewareFunc {
	if err := s.Validate(); err != nil {
		log.Panic("Failed to set endpoint sensitivity", err.Error(), nil)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(sensitivityKey, s)
			return next(ctx)
		}
	}
}

// Returns sensitivity of the endpoint or DefaultEndpoint if it wasn't set.
func GetSensitivity(ctx echo.Context) EndpointSensitivity {
	if s, ok := ctx.Get(sensitivityKey).(EndpointSensitivity); ok {
		return s
	}
	return DefaultEndpoint
}
