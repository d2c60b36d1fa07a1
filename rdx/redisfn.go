package rdx

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"safeplate/config"

	"github.com/redis/go-redis/v9"
)

const suggestTTL = 10 * time.Minute

// Cache is a small JSON cache for suggestion responses. Suggestion queries
// aggregate over the whole corpus, so they are the only reads worth caching.
type Cache struct {
	Conn *redis.Client
}

func New(ctx context.Context, cfg config.Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Cache{Conn: client}, nil
}

// GetJSON reports whether the key was present and decoded.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	raw, err := c.Conn.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("rdx: bad cache entry %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON stores best-effort; a cache write failure never fails the request.
func (c *Cache) SetJSON(ctx context.Context, key string, val any) {
	data, err := json.Marshal(val)
	if err != nil {
		log.Printf("rdx: marshal %s: %v", key, err)
		return
	}
	if err := c.Conn.Set(ctx, key, data, suggestTTL).Err(); err != nil {
		log.Printf("rdx: set %s: %v", key, err)
	}
}

// FlushSuggestions drops every cached suggestion list. Called by the
// invalidation worker after any recipe write.
func (c *Cache) FlushSuggestions(ctx context.Context) {
	keys, err := c.Conn.Keys(ctx, "suggest:*").Result()
	if err != nil {
		log.Printf("rdx: scan suggest keys: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.Conn.Del(ctx, keys...).Err(); err != nil {
		log.Printf("rdx: flush suggest keys: %v", err)
	}
}
