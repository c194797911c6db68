package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"career-recommender/internal/shared/server/respond"
)

// RateLimitRule is a token bucket refilled at Rate per second up to Burst.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimitConfig limits requests that run the scoring pipeline. Scoring
// reports whether a request does; other requests are never limited.
type RateLimitConfig struct {
	Rule    RateLimitRule
	Scoring func(*gin.Context) bool
	Limiter *RateLimiter
}

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
}

type rateBucket struct {
	tokens float64
	last   time.Time
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets: make(map[string]*rateBucket),
		now:     now,
	}
}

// RateLimit rejects scoring requests over budget with 429 and a Retry-After header.
// A zero rule disables limiting.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.Rule.Rate <= 0 || cfg.Rule.Burst <= 0 || cfg.Scoring == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if !cfg.Scoring(c) {
			c.Next()
			return
		}
		allowed, retryAfter := cfg.Limiter.Allow(strings.TrimSpace(c.ClientIP()), cfg.Rule)
		if allowed {
			c.Next()
			return
		}
		retryAfterMs := max(int(retryAfter/time.Millisecond), 1)
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(float64(retryAfterMs)/1000.0))))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many recommendation requests, try again shortly", gin.H{
			"retryAfterMs": retryAfterMs,
		})
	}
}

// Allow consumes one token for key and reports how long to wait when none is left.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &rateBucket{
			tokens: float64(rule.Burst),
			last:   now,
		}
		l.buckets[key] = bucket
	}
	elapsed := now.Sub(bucket.last).Seconds()
	if elapsed > 0 {
		bucket.tokens = math.Min(float64(rule.Burst), bucket.tokens+elapsed*rule.Rate)
		bucket.last = now
	}
	if bucket.tokens >= 1 {
		bucket.tokens -= 1
		return true, 0
	}
	waitSec := (1 - bucket.tokens) / rule.Rate
	return false, time.Duration(math.Ceil(waitSec*1000.0)) * time.Millisecond
}
