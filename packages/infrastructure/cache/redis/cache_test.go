package redis

import (
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T) (*driver, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	d := New()
	err := d.connect(&redis.Options{Addr: mr.Addr()}, time.Second, time.Minute)
	require.NoError(t, err)

	t.Cleanup(func() {
		if d.IsConnected() {
			d.Close()
		}
	})

	return d, mr
}

func TestCacheOperations(t *testing.T) {
	d, mr := newTestDriver(t)

	t.Run("Set and Get", func(t *testing.T) {
		require.Nil(t, d.Set("event:list:1", `[{"title":"Pool party"}]`))

		v, ok := d.Get("event:list:1")
		assert.True(t, ok)
		assert.Equal(t, `[{"title":"Pool party"}]`, v)

		ttl := mr.TTL("event:list:1")
		assert.Equal(t, time.Minute, ttl)
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		v, ok := d.Get("non-existent")
		assert.False(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("Set rejects unsupported types", func(t *testing.T) {
		err := d.Set("struct", struct{}{})
		assert.NotNil(t, err)
		assert.False(t, mr.Exists("struct"))
	})

	t.Run("Delete", func(t *testing.T) {
		mr.Set("to-delete", "value")

		require.Nil(t, d.Delete("to-delete"))
		assert.False(t, mr.Exists("to-delete"))

		assert.Nil(t, d.Delete())
	})

	t.Run("Expiration", func(t *testing.T) {
		require.Nil(t, d.Set("expiring-key", "value"))

		mr.FastForward(2 * time.Minute)

		_, ok := d.Get("expiring-key")
		assert.False(t, ok)
	})

	t.Run("Delete pattern", func(t *testing.T) {
		mr.FlushAll()

		for _, key := range []string{"post:list:a", "post:list:b", "comment:list:a", "postal"} {
			mr.Set(key, "v")
		}
		// more keys than a single SCAN batch
		for i := range 250 {
			mr.Set("post:list:bulk"+strconv.Itoa(i), "v")
		}

		require.Nil(t, d.DeletePattern("post:*"))

		assert.ElementsMatch(t, []string{"comment:list:a", "postal"}, mr.Keys())
	})

	t.Run("Flush all", func(t *testing.T) {
		mr.Set("a", "1")
		mr.Set("b", "2")

		require.Nil(t, d.FlushAll())
		assert.Empty(t, mr.Keys())
	})
}

func TestConnection(t *testing.T) {
	t.Run("unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		d := New()
		err := d.connect(&redis.Options{Addr: addr}, 200*time.Millisecond, time.Minute)
		assert.Error(t, err)
		assert.False(t, d.IsConnected())
	})

	t.Run("connect twice", func(t *testing.T) {
		d, _ := newTestDriver(t)

		err := d.connect(&redis.Options{}, time.Second, time.Minute)
		assert.Error(t, err)
	})

	t.Run("close", func(t *testing.T) {
		d, _ := newTestDriver(t)

		assert.Nil(t, d.Close())
		assert.False(t, d.IsConnected())
		assert.NotNil(t, d.Close())
	})

	t.Run("instances are independent", func(t *testing.T) {
		assert.NotSame(t, New(), New())
	})
}
