// Package rdx wraps an optional Redis connection used as a read-through
// cache. When REDIS_URL is unset every helper is a no-op, so the server
// runs fine without Redis.
package rdx

import (
	"log"
	"os"
	"time"

	"pranerpujo/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func Init() {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		log.Println("REDIS_URL not set; response caching disabled")
		return
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("Redis ping failed (continuing without cache): %v", err)
		Conn = nil
	}
}

// Get returns the cached value for key, or "" on miss, cache disabled,
// or error. Cache errors are never surfaced to requests.
func Get(key string) string {
	if Conn == nil {
		return ""
	}
	val, err := Conn.Get(globals.Ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

func SetWithExpiry(key, value string, ttl time.Duration) {
	if Conn == nil {
		return
	}
	if err := Conn.Set(globals.Ctx, key, value, ttl).Err(); err != nil {
		log.Printf("Redis set %s failed: %v", key, err)
	}
}

func Del(keys ...string) {
	if Conn == nil || len(keys) == 0 {
		return
	}
	if err := Conn.Del(globals.Ctx, keys...).Err(); err != nil {
		log.Printf("Redis del failed: %v", err)
	}
}
