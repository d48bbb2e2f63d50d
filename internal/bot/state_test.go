package bot_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/bot"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
)

func exerciseStore(t *testing.T, store bot.StateStore) {
	t.Helper()
	ctx := context.Background()

	waiting, err := store.Waiting(ctx, 7)
	require.NoError(t, err)
	assert.False(t, waiting)

	require.NoError(t, store.SetWaiting(ctx, 7))

	waiting, err = store.Waiting(ctx, 7)
	require.NoError(t, err)
	assert.True(t, waiting)

	other, err := store.Waiting(ctx, 8)
	require.NoError(t, err)
	assert.False(t, other)

	require.NoError(t, store.Clear(ctx, 7))

	waiting, err = store.Waiting(ctx, 7)
	require.NoError(t, err)
	assert.False(t, waiting)

	require.NoError(t, store.Clear(ctx, 7))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, bot.NewMemoryStore(time.Hour))

	t.Run("expires", func(t *testing.T) {
		now := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC)
		store := bot.NewMemoryStore(time.Hour)
		store.SetClock(func() time.Time { return now })
		ctx := context.Background()

		require.NoError(t, store.SetWaiting(ctx, 1))

		now = now.Add(59 * time.Minute)
		waiting, _ := store.Waiting(ctx, 1)
		assert.True(t, waiting)

		now = now.Add(time.Minute)
		waiting, _ = store.Waiting(ctx, 1)
		assert.False(t, waiting)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		now := time.Now()
		store := bot.NewMemoryStore(0)
		store.SetClock(func() time.Time { return now })
		ctx := context.Background()

		require.NoError(t, store.SetWaiting(ctx, 1))
		now = now.Add(24 * 365 * time.Hour)

		waiting, _ := store.Waiting(ctx, 1)
		assert.True(t, waiting)
	})
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := bot.NewRedisStore(client, time.Hour)
	t.Cleanup(func() { store.Close() })

	exerciseStore(t, store)

	t.Run("expires", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, store.SetWaiting(ctx, 3))
		assert.True(t, mr.Exists("primeleads:bot:waiting:3"))

		mr.FastForward(time.Hour + time.Second)

		waiting, err := store.Waiting(ctx, 3)
		require.NoError(t, err)
		assert.False(t, waiting)
	})
}

func TestNewStateStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := &config.BotConfig{StateStore: "memory", StateTTL: "1h"}
		store, err := bot.NewStateStore(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &bot.MemoryStore{}, store)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.BotConfig{StateStore: "redis", StateTTL: "1h"}
		cfg.Redis.Addr = mr.Addr()

		store, err := bot.NewStateStore(ctx, cfg)
		require.NoError(t, err)
		require.IsType(t, &bot.RedisStore{}, store)
		t.Cleanup(func() { store.(*bot.RedisStore).Close() })

		require.NoError(t, store.SetWaiting(ctx, 5))
		assert.Equal(t, time.Hour, mr.TTL("primeleads:bot:waiting:5"))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cfg := &config.BotConfig{StateStore: "redis", StateTTL: "1h"}
		cfg.Redis.Addr = addr

		_, err := bot.NewStateStore(ctx, cfg)
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := bot.NewStateStore(ctx, &config.BotConfig{StateStore: "etcd"})
		assert.Error(t, err)
	})
}
