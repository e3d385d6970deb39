package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ukydev/fleet-dashboard/internal/response"
)

// RateLimiter applies a sliding-window request limit per client IP.
type RateLimiter struct {
	requests    map[string][]time.Time // IP -> request times
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewRateLimiter allows maxRequests per window for each client.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests:    make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Allow records a request from key and reports whether it is within the
// limit, along with the remaining budget.
func (m *RateLimiter) Allow(key string) (bool, int) {
	now := m.now()
	windowStart := now.Add(-m.window)

	m.mu.Lock()
	defer m.mu.Unlock()

	valid := m.requests[key][:0]
	for _, ts := range m.requests[key] {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}
	if len(valid) == 0 {
		delete(m.requests, key)
	}

	if len(valid) >= m.maxRequests {
		m.requests[key] = valid
		return false, 0
	}
	m.requests[key] = append(valid, now)
	return true, m.maxRequests - len(valid) - 1
}

// Handler returns the gin middleware.
func (m *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, remaining := m.Allow(c.ClientIP())
		c.Header("X-RateLimit-Limit", strconv.Itoa(m.maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(m.window.Seconds())))
			response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited, "rate limit exceeded")
			return
		}
		c.Next()
	}
}
