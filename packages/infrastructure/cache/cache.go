package cache

import (
	Error "hoa/packages/common/errors"
	"hoa/packages/common/logger"
	"hoa/packages/infrastructure/cache/redis"
)

var log = logger.NewSource("CACHE", logger.Default)

type Cache interface {
	Connect()
	Close() *Error.Status
	IsConnected() bool
	// Returns cached value and true, or empty string and false on miss or error.
	Get(key string) (string, bool)
	Set(key string, value any) *Error.Status
	Delete(keys ...string) *Error.Status
	// Deletes every key matching glob-style pattern.
	DeletePattern(pattern string) *Error.Status
	FlushAll() *Error.Status
}

var Client Cache = redis.New()
