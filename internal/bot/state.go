package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
)

// StateStore records which users the bot expects a website URL from.
type StateStore interface {
	Waiting(ctx context.Context, userID int64) (bool, error)
	SetWaiting(ctx context.Context, userID int64) error
	Clear(ctx context.Context, userID int64) error
}

// NewStateStore builds the store named by cfg.StateStore. The redis store
// is pinged before it is returned.
func NewStateStore(ctx context.Context, cfg *config.BotConfig) (StateStore, error) {
	ttl := cfg.StateTTLDuration()

	switch cfg.StateStore {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		return NewRedisStore(client, ttl), nil
	case "memory", "":
		return NewMemoryStore(ttl), nil
	default:
		return nil, fmt.Errorf("unknown state store %q", cfg.StateStore)
	}
}

// MemoryStore keeps waiting flags in process. A zero TTL never expires.
type MemoryStore struct {
	mu    sync.Mutex
	until map[int64]time.Time
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		until: make(map[int64]time.Time),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *MemoryStore) Waiting(_ context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.until[userID]
	if !ok {
		return false, nil
	}
	if !until.IsZero() && !m.now().Before(until) {
		delete(m.until, userID)
		return false, nil
	}
	return true, nil
}

func (m *MemoryStore) SetWaiting(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var until time.Time
	if m.ttl > 0 {
		until = m.now().Add(m.ttl)
	}
	m.until[userID] = until
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.until, userID)
	return nil
}

// RedisStore keeps waiting flags as expiring redis keys so several bot
// replicas share them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Waiting(ctx context.Context, userID int64) (bool, error) {
	n, err := r.client.Exists(ctx, waitingKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("read waiting flag: %w", err)
	}
	return n > 0, nil
}

func (r *RedisStore) SetWaiting(ctx context.Context, userID int64) error {
	if err := r.client.Set(ctx, waitingKey(userID), "1", r.ttl).Err(); err != nil {
		return fmt.Errorf("set waiting flag: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, waitingKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear waiting flag: %w", err)
	}
	return nil
}

// Close releases the redis connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func waitingKey(userID int64) string {
	return fmt.Sprintf("primeleads:bot:waiting:%d", userID)
}
