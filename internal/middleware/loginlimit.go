package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/negligencias/site-server/internal/audit"
	"github.com/negligencias/site-server/internal/config"
	apperrors "github.com/negligencias/site-server/internal/errors"
)

const loginCleanupPeriod = 5 * time.Minute

type loginBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginRateLimiter gives each client IP a token bucket of login attempts.
type LoginRateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*loginBucket
	every       rate.Limit
	burst       int
	lastCleanup time.Time
	now         func() time.Time
}

func NewLoginRateLimiter(perMinute int) *LoginRateLimiter {
	if perMinute <= 0 {
		perMinute = config.LoginAttemptsPerMin
	}
	return &LoginRateLimiter{
		buckets:     make(map[string]*loginBucket),
		every:       rate.Every(time.Minute / time.Duration(perMinute)),
		burst:       perMinute,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

func (l *LoginRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastCleanup) >= loginCleanupPeriod {
		l.lastCleanup = now
		for key, b := range l.buckets {
			if now.Sub(b.lastSeen) > loginCleanupPeriod {
				delete(l.buckets, key)
			}
		}
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &loginBucket{limiter: rate.NewLimiter(l.every, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *LoginRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := audit.ClientIP(r)
		if !l.allow(ip) {
			audit.LogFromRequest(r, audit.Event{Type: audit.EventRateLimitExceed, Details: map[string]any{"bucket": "login"}})
			w.Header().Set("Retry-After", strconv.Itoa(int(time.Minute.Seconds())/l.burst))
			writeError(w, apperrors.RateLimitExceeded())
			return
		}
		next.ServeHTTP(w, r)
	})
}
