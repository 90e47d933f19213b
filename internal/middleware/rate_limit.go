package middleware

import (
	"net/http"
	"sync"
	"time"

	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter hands out one token bucket per key and forgets buckets
// idle for longer than idleTTL.
type KeyedRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	r       rate.Limit
	b       int
	idleTTL time.Duration
	lastGC  time.Time
	now     func() time.Time
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		entries: make(map[string]*limiterEntry),
		r:       r,
		b:       b,
		idleTTL: 10 * time.Minute,
		now:     time.Now,
	}
}

func (l *KeyedRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastGC) > l.idleTTL {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > l.idleTTL {
				delete(l.entries, k)
			}
		}
		l.lastGC = now
	}

	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.entries[key] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1)
}

func (l *KeyedRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func tooManyRequests(c *gin.Context, message string) {
	response.Error(c, http.StatusTooManyRequests, apperror.CodeRateLimited, message, nil)
	c.Abort()
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			tooManyRequests(c, "Too many requests from this IP")
			return
		}
		c.Next()
	}
}

// RateLimitByUser must run after AuthMiddleware; anonymous requests pass.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.Allow(userID) {
			tooManyRequests(c, "Too many requests from this user")
			return
		}
		c.Next()
	}
}
