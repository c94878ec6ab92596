package ratelimit

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window request counter backed by Redis, so the limit
// holds across multiple instances. Redis errors fail open: a broken limiter
// must not take the API down with it.
type Limiter struct {
	redis  *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// New constructs a Limiter. prefix namespaces the Redis keys so multiple
// limiters can share one client.
func New(redisClient *redis.Client, prefix string, limit int, window time.Duration) *Limiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &Limiter{
		redis:  redisClient,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow increments the counter for key and reports whether the request is
// within the window's budget, along with the remaining quota.
func (l *Limiter) Allow(ctx context.Context, key string) (allowed bool, remaining int, err error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	pipe := l.redis.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, l.limit, fmt.Errorf("redis error: %w", err)
	}

	count := int(incr.Val())
	remaining = l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.limit, remaining, nil
}

// TTL returns the time until the window for key resets.
func (l *Limiter) TTL(ctx context.Context, key string) (time.Duration, error) {
	return l.redis.TTL(ctx, fmt.Sprintf("%s:%s", l.prefix, key)).Result()
}

// Reset clears the counter for key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.redis.Del(ctx, fmt.Sprintf("%s:%s", l.prefix, key)).Err()
}

// Middleware limits requests per client IP. When Redis is unreachable the
// request is served anyway.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := "ip:" + clientIP(r)

		allowed, remaining, err := l.Allow(ctx, key)
		if err != nil {
			log.Printf("rate limiter unavailable, serving request: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ttl, err := l.TTL(ctx, key); err == nil && ttl > 0 {
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
		}

		if !allowed {
			retryAfter := l.window
			if ttl, err := l.TTL(ctx, key); err == nil && ttl > 0 {
				retryAfter = ttl
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"too many requests"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP trusts RemoteAddr as rewritten by the RealIP middleware upstream.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
