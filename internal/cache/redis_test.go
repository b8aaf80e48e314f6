package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-datagrid/internal/cache"
	"admin-datagrid/pkg/log"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := cache.NewRedisStore(client, "test:", time.Minute)
	ctx := context.Background()
	key := cache.NewKey("/audit-logs", "limit=50&page=1")

	t.Run("Round Trip", func(t *testing.T) {
		fetched := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, store.Set(ctx, key, cache.Record{Body: []byte(`{"success":true}`), FetchedAt: fetched}))

		rec, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, `{"success":true}`, string(rec.Body))
		assert.True(t, fetched.Equal(rec.FetchedAt))
		assert.True(t, mr.Exists("test:"+string(key)))
		assert.Equal(t, time.Minute, mr.TTL("test:"+string(key)))
	})

	t.Run("Delete And Miss", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key))
		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Expiry", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, cache.Record{Body: []byte("x")}))
		mr.FastForward(2 * time.Minute)
		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Backs Cache", func(t *testing.T) {
		c := cache.New(store, log.NewNop(), cache.Config{})
		defer c.Close()
		var calls int32
		rec := &recorder{}
		unsub := c.Subscribe(key, staticFetcher(&calls, "from-redis"), rec.listen)
		defer unsub()
		c.Wait()

		assert.Equal(t, "from-redis", string(rec.last().Body))
		stored, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "from-redis", string(stored.Body))
	})
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	client, err := cache.Dial(context.Background(), addr)
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = cache.Dial(context.Background(), addr)
	assert.Error(t, err)
}
