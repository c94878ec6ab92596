package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testLimiter(t *testing.T, limit int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, "ratelimit:test", limit, window), mr
}

func TestAllow(t *testing.T) {
	limiter, _ := testLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, remaining, err := limiter.Allow(ctx, "ip:1.2.3.4")
		require.NoError(t, err)
		require.True(t, allowed, "request %d should pass", i+1)
		require.Equal(t, 2-i, remaining)
	}

	allowed, remaining, err := limiter.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	require.False(t, allowed)
	require.Equal(t, 0, remaining)
}

func TestAllow_IndependentKeys(t *testing.T) {
	limiter, _ := testLimiter(t, 1, time.Minute)
	ctx := context.Background()

	allowed, _, err := limiter.Allow(ctx, "ip:1.1.1.1")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = limiter.Allow(ctx, "ip:1.1.1.1")
	require.NoError(t, err)
	require.False(t, allowed)

	allowed, _, err = limiter.Allow(ctx, "ip:2.2.2.2")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestAllow_WindowReset(t *testing.T) {
	limiter, mr := testLimiter(t, 1, time.Minute)
	ctx := context.Background()

	allowed, _, err := limiter.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = limiter.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	require.False(t, allowed)

	mr.FastForward(time.Minute + time.Second)

	allowed, _, err = limiter.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestMiddleware(t *testing.T) {
	limiter, _ := testLimiter(t, 2, time.Minute)

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	doRequest := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "9.9.9.9:12345"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := doRequest()
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := doRequest()
	require.Equal(t, http.StatusOK, second.Code)

	third := doRequest()
	require.Equal(t, http.StatusTooManyRequests, third.Code)
	require.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
	require.NotEmpty(t, third.Header().Get("Retry-After"))
	require.JSONEq(t, `{"error":"too many requests"}`, third.Body.String())
}

func TestMiddleware_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	limiter := New(client, "ratelimit:test", 1, time.Minute)

	mr.Close()

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "9.9.9.9:12345"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass when redis is down", i+1)
	}
}
