package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RealIP extracts the client IP, honoring X-Forwarded-For when the service
// sits behind a reverse proxy, falling back to RemoteAddr.
func RealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First address in the chain is the original client.
		if i := strings.IndexByte(xff, ','); i > 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter is an in-memory fixed-window rate limiter keyed by string
// (here, client IP). Entries are pruned by a periodic Cleanup call.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windows: make(map[string]*window)}
}

// Allow reports whether key has made fewer than limit requests in the
// current window.
func (rl *RateLimiter) Allow(key string, limit int, span time.Duration) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok || now.After(w.resetAt) {
		rl.windows[key] = &window{count: 1, resetAt: now.Add(span)}
		return true
	}
	w.count++
	return w.count <= limit
}

// Cleanup drops expired windows. Run it periodically to bound memory.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, w := range rl.windows {
		if now.After(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}

// RateLimit returns middleware that rejects requests over the limit with
// 429, keyed by keyFunc.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string, limit int, span time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(keyFunc(r), limit, span) {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
