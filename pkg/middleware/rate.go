// Package middleware provides the HTTP middleware of the copshop API.
package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/akil18/cop-shop-server-side/pkg/response"
)

// bucket tracks a fixed-window request count for one client IP.
type bucket struct {
	count   int
	resetAt time.Time
}

type limiter struct {
	mu        sync.Mutex
	max       int
	window    time.Duration
	buckets   map[string]*bucket
	nextSweep time.Time
	now       func() time.Time
}

func newLimiter(max int, window time.Duration) *limiter {
	return &limiter{
		max:     max,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	// Evict expired buckets at most once per window.
	if now.After(l.nextSweep) {
		for k, b := range l.buckets {
			if now.After(b.resetAt) {
				delete(l.buckets, k)
			}
		}
		l.nextSweep = now.Add(l.window)
	}

	b, ok := l.buckets[ip]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[ip] = b
	}
	b.count++
	return b.count <= l.max
}

// RateLimit returns a middleware that limits each IP to max requests per
// window. A non-positive max disables limiting.
//
//	r.Use(middleware.RateLimit(config.RateLimit(), time.Minute))
func RateLimit(max int, window time.Duration) func(http.Handler) http.Handler {
	if max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := newLimiter(max, window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r)) {
				w.Header().Set("Retry-After", retryAfter(window))
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfter(window time.Duration) string {
	secs := int(window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
