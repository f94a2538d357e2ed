package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agrilink/backend/internal/interfaces/http/dto"
)

// RateLimiterConfig configures the token bucket rate limiter
type RateLimiterConfig struct {
	// Requests allowed per Window
	Requests int
	Window   time.Duration
	// KeyFunc derives the bucket key from the request. Defaults to client IP;
	// authenticated routes key by organization so one org cannot starve
	// others behind the same NAT.
	KeyFunc func(c *gin.Context) string
}

type tokenBucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a token bucket limiter keyed per client
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	rate    float64 // tokens per second
	burst   float64
	keyFunc func(c *gin.Context) string
	stop    chan struct{}
}

// NewRateLimiter creates a rate limiter and starts its stale-bucket cleanup
// goroutine. Call Stop when shutting down.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	rl := &RateLimiter{
		buckets: make(map[string]*tokenBucket),
		rate:    float64(cfg.Requests) / cfg.Window.Seconds(),
		burst:   float64(cfg.Requests),
		keyFunc: keyFunc,
		stop:    make(chan struct{}),
	}
	go rl.cleanupLoop(cfg.Window)
	return rl
}

// OrgKeyFunc keys buckets by the authenticated organization, falling back to
// client IP for unauthenticated requests.
func OrgKeyFunc(c *gin.Context) string {
	if orgID := c.GetString(ContextKeyOrgID); orgID != "" {
		return "org:" + orgID
	}
	return "ip:" + c.ClientIP()
}

// Middleware returns the gin handler enforcing the limit
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.keyFunc(c)
		allowed, remaining := rl.take(key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(int(rl.burst)))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(1/rl.rate)+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRateLimited, "Too many requests", GetRequestID(c)))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) take(key string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &tokenBucket{tokens: rl.burst, lastSeen: now}
		rl.buckets[key] = b
	}

	elapsed := now.Sub(b.lastSeen).Seconds()
	b.tokens += elapsed * rl.rate
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false, 0
	}
	b.tokens--
	return true, int(b.tokens)
}

func (rl *RateLimiter) cleanupLoop(window time.Duration) {
	interval := window
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * interval)
			rl.mu.Lock()
			for key, b := range rl.buckets {
				if b.lastSeen.Before(cutoff) {
					delete(rl.buckets, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop terminates the cleanup goroutine
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}
