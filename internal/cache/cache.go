package cache

import (
    "context"
    "encoding/json"
    "fmt"
    "sync"
    "time"

    "github.com/redis/go-redis/v9"
)

var ErrNotFound = fmt.Errorf("cache: key not found")

// Cache holds short-lived snapshots (the configured-offer set) for a
// console session. The engine treats it as read-mostly: every mutation
// path deletes the key and refetches from the backend.
type Cache interface {
    Get(ctx context.Context, key string) ([]byte, error)
    Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
    Delete(ctx context.Context, key string) error
}

type RedisCache struct {
    client *redis.Client
}

func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
    client := redis.NewClient(&redis.Options{
        Addr:     addr,
        Password: password,
        DB:       db,
    })

    ctx := context.Background()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil, fmt.Errorf("failed to connect to Redis: %w", err)
    }

    return &RedisCache{client: client}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
    val, err := r.client.Get(ctx, key).Bytes()
    if err == redis.Nil {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
    return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
    return r.client.Del(ctx, key).Err()
}

func (r *RedisCache) Close() error {
    return r.client.Close()
}

type InMemoryCache struct {
    mu   sync.Mutex
    data map[string]cacheEntry
}

type cacheEntry struct {
    value     []byte
    expiresAt time.Time
}

func NewInMemoryCache() *InMemoryCache {
    return &InMemoryCache{
        data: make(map[string]cacheEntry),
    }
}

func (m *InMemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
    m.mu.Lock()
    defer m.mu.Unlock()

    entry, exists := m.data[key]
    if !exists {
        return nil, ErrNotFound
    }

    if time.Now().After(entry.expiresAt) {
        delete(m.data, key)
        return nil, ErrNotFound
    }

    return entry.value, nil
}

func (m *InMemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
    m.mu.Lock()
    defer m.mu.Unlock()

    m.data[key] = cacheEntry{
        value:     value,
        expiresAt: time.Now().Add(ttl),
    }

    return nil
}

func (m *InMemoryCache) Delete(ctx context.Context, key string) error {
    m.mu.Lock()
    defer m.mu.Unlock()

    delete(m.data, key)
    return nil
}

func GetJSON(ctx context.Context, c Cache, key string, dest interface{}) error {
    data, err := c.Get(ctx, key)
    if err != nil {
        return err
    }
    return json.Unmarshal(data, dest)
}

func SetJSON(ctx context.Context, c Cache, key string, value interface{}, ttl time.Duration) error {
    data, err := json.Marshal(value)
    if err != nil {
        return err
    }
    return c.Set(ctx, key, data, ttl)
}
