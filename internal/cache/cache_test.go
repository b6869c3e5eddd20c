package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clients(t *testing.T) map[string]Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return map[string]Client{
		"memory": NewMemory("pkce"),
		"redis":  NewRedisWithClient(rdb, "pkce"),
	}
}

func TestClient_TakeIsSingleUse(t *testing.T) {
	for name, c := range clients(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, c.Set(ctx, "state-1", "verifier-1", time.Minute))

			v, err := c.Take(ctx, "state-1")
			require.NoError(t, err)
			assert.Equal(t, "verifier-1", v)

			_, err = c.Take(ctx, "state-1")
			assert.True(t, IsNotFound(err))
		})
	}
}

func TestClient_GetSetDelete(t *testing.T) {
	for name, c := range clients(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := c.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, c.Set(ctx, "k", "v", 0))
			v, err := c.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v", v)

			require.NoError(t, c.Delete(ctx, "k"))
			_, err = c.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrNotFound)
			require.NoError(t, c.Ping(ctx))
		})
	}
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory("")
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)
	_, err := c.Take(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNew_DefaultsToMemory(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	require.NoError(t, c.Ping(context.Background()))
}

func TestRedis_PrefixSeparator(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	for _, prefix := range []string{"hellokey:state", "hellokey:state:"} {
		mr.FlushAll()
		c := NewRedisWithClient(rdb, prefix)
		require.NoError(t, c.Set(ctx, "pkce:abc", "v", time.Minute))
		assert.Equal(t, []string{"hellokey:state:pkce:abc"}, mr.Keys(), prefix)
	}
}

func TestNew_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := New(Config{Kind: "redis", Addr: mr.Addr(), Prefix: "state"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Set(context.Background(), "k", "v", 0))
	assert.True(t, mr.Exists("state:k"))

	rdb, ok := RedisOf(c)
	require.True(t, ok)
	require.NoError(t, rdb.Ping(context.Background()).Err())

	_, ok = RedisOf(NewMemory(""))
	assert.False(t, ok)
}
