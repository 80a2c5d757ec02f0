package redis

import (
	"context"
	"errors"
	"fmt"
	"hoa/packages/common/config"
	Error "hoa/packages/common/errors"
	"hoa/packages/common/logger"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var cacheLogger = logger.NewSource("CACHE", logger.Default)

type driver struct {
	client           *redis.Client
	isConnected      bool
	operationTimeout time.Duration
	ttl              time.Duration
}

func New() *driver {
	return new(driver)
}

// Connects to redis using config.Secret and config.Cache.
func (d *driver) Connect() {
	options := &redis.Options{
		Addr:        config.Secret.CacheURI,
		Password:    config.Secret.CachePassword,
		DB:          config.Secret.CacheDB,
		ReadTimeout: config.Cache.SocketTimeout(),
	}

	if err := d.connect(options, config.Cache.OperationTimeout(), config.Cache.TTL()); err != nil {
		cacheLogger.Panic("DB connection failed", err.Error(), nil)
	}
}

func (d *driver) connect(options *redis.Options, operationTimeout, ttl time.Duration) error {
	if d.isConnected {
		return errors.New("connection already established")
	}

	cacheLogger.Info("Connecting to DB...", nil)

	d.client = redis.NewClient(options)
	d.operationTimeout = operationTimeout
	d.ttl = ttl

	ctx, cancel := d.defaultTimeoutContext()
	defer cancel()

	if err := d.client.Ping(ctx).Err(); err != nil {
		d.client.Close()
		return err
	}

	cacheLogger.Info("Connecting to DB: OK", nil)

	d.isConnected = true

	return nil
}

func (d *driver) Close() *Error.Status {
	if !d.isConnected {
		return Error.NewStatusError(
			"connection not established",
			http.StatusInternalServerError,
		)
	}

	cacheLogger.Info("Disconnecting from DB...", nil)

	if err := d.client.Close(); err != nil {
		return Error.NewStatusError(
			err.Error(),
			http.StatusInternalServerError,
		)
	}

	cacheLogger.Info("Disconnecting from DB: OK", nil)

	d.isConnected = false

	return nil
}

func (d *driver) IsConnected() bool {
	return d.isConnected
}

func (d *driver) defaultTimeoutContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.operationTimeout)
}

// timeout is x5 of defaultTimeoutContext
func (d *driver) longTimeoutContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.operationTimeout*5)
}

// Logs given action and error.
// Returns err converted to *Error.Status.
func logAndConvert(action string, err error) *Error.Status {
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			cacheLogger.Error("Request failed", "TIMEOUT: "+action, nil)
		} else {
			cacheLogger.Error("Request failed", "Failed to "+action+": "+err.Error(), nil)
		}
		return Error.StatusInternalError
	}

	cacheLogger.Trace(action, nil)

	return nil
}

func (d *driver) Get(key string) (string, bool) {
	ctx, cancel := d.defaultTimeoutContext()
	defer cancel()

	cachedData, err := d.client.Get(ctx, key).Result()
	if err == redis.Nil {
		cacheLogger.Trace("Miss: "+key, nil)
		return "", false
	}

	return cachedData, logAndConvert("Get: "+key, err) == nil
}

// go-redis driver can handle only this types:
// string, bool, []byte, int, int64, float64, time.Time
func (d *driver) Set(key string, value any) *Error.Status {
	switch value.(type) {
	case string, bool, []byte, int, int64, float64, time.Time:
	default:
		err := Error.NewStatusError(
			fmt.Sprintf("invalid cache value type: %T", value),
			http.StatusInternalServerError,
		)
		return logAndConvert("Set: "+key, err)
	}

	ctx, cancel := d.defaultTimeoutContext()
	defer cancel()

	err := d.client.Set(ctx, key, value, d.ttl).Err()

	return logAndConvert("Set: "+key, err)
}

func (d *driver) Delete(keys ...string) *Error.Status {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := d.defaultTimeoutContext()
	defer cancel()

	err := d.client.Unlink(ctx, keys...).Err()

	return logAndConvert("Delete: "+strings.Join(keys, ","), err)
}

func (d *driver) FlushAll() *Error.Status {
	ctx, cancel := d.defaultTimeoutContext()
	defer cancel()

	err := d.client.FlushAll(ctx).Err()

	return logAndConvert("Flush All", err)
}

const deletePatternAction = "Delete Pattern: "

// Deletes all keys matching pattern (glob-style, see redis SCAN).
func (d *driver) DeletePattern(pattern string) *Error.Status {
	const scanBatchSize = 100

	var cursor uint64
	var keys []string
	var err error

	ctx, cancel := d.longTimeoutContext()
	defer cancel()

	deleted := 0

	for {
		if err := ctx.Err(); err != nil {
			return logAndConvert(deletePatternAction+pattern, err)
		}

		keys, cursor, err = d.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return logAndConvert(deletePatternAction+pattern, fmt.Errorf("error scanning keys: %w", err))
		}

		if len(keys) > 0 {
			pipeline := d.client.Pipeline()

			for _, key := range keys {
				pipeline.Unlink(ctx, key)
			}

			if _, err = pipeline.Exec(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return logAndConvert(deletePatternAction+pattern, ctxErr)
				}
				return logAndConvert(deletePatternAction+pattern, fmt.Errorf("error deleting keys: %w", err))
			}

			deleted += len(keys)
		}

		// SCAN is over when cursor is back to 0
		if cursor == 0 {
			cacheLogger.Trace("Deleted "+strconv.Itoa(deleted)+" keys matching "+pattern, nil)
			return logAndConvert(deletePatternAction+pattern, nil)
		}
	}
}
