package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("allows requests under limit", func(t *testing.T) {
		limiter := NewMemoryLimiter()
		for i := 0; i < 5; i++ {
			allowed, remaining, _ := limiter.Allow(ctx, "k1", 10, time.Minute)
			assert.True(t, allowed)
			assert.Equal(t, 10-i-1, remaining)
		}
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		limiter := NewMemoryLimiter()
		for i := 0; i < 5; i++ {
			limiter.Allow(ctx, "k2", 5, time.Minute)
		}
		allowed, remaining, _ := limiter.Allow(ctx, "k2", 5, time.Minute)
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
	})

	t.Run("tracks keys separately", func(t *testing.T) {
		limiter := NewMemoryLimiter()
		for i := 0; i < 5; i++ {
			limiter.Allow(ctx, "a", 5, time.Minute)
		}
		allowed, _, _ := limiter.Allow(ctx, "b", 5, time.Minute)
		assert.True(t, allowed)
	})

	t.Run("window slides", func(t *testing.T) {
		limiter := NewMemoryLimiter()
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		for i := 0; i < 3; i++ {
			limiter.Allow(ctx, "k3", 3, time.Minute)
		}
		allowed, _, resetAt := limiter.Allow(ctx, "k3", 3, time.Minute)
		assert.False(t, allowed)
		assert.Equal(t, now.Add(time.Minute), resetAt)

		now = now.Add(61 * time.Second)
		allowed, _, _ = limiter.Allow(ctx, "k3", 3, time.Minute)
		assert.True(t, allowed)
	})
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	limiter := NewRedisLimiter(client, 200*time.Millisecond)
	allowed, remaining, _ := limiter.Allow(context.Background(), "ip:contact:1.2.3.4", 5, time.Minute)
	assert.True(t, allowed)
	assert.Equal(t, 4, remaining)
}

func TestIPRateLimitMiddleware(t *testing.T) {
	mw := NewIPRateLimitMiddleware(NewMemoryLimiter(), 2, time.Minute, "contact")
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/contact", strings.NewReader("{}"))
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)
	rec := do("10.0.0.1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = do("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")

	// Port changes do not reset the bucket; other IPs are unaffected.
	assert.Equal(t, http.StatusOK, do("10.0.0.2").Code)
}

func TestLoginRateLimiter(t *testing.T) {
	l := NewLoginRateLimiter(5)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	handler := l.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	attempt := func() int {
		req := httptest.NewRequest("POST", "/api/admin/auth/login", nil)
		req.RemoteAddr = "192.0.2.1:1000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusUnauthorized, attempt())
	}
	assert.Equal(t, http.StatusTooManyRequests, attempt())

	now = now.Add(12 * time.Second)
	assert.Equal(t, http.StatusUnauthorized, attempt())
	assert.Equal(t, http.StatusTooManyRequests, attempt())
}
