// Package ratelimit throttles sign-in attempts. Counters live in a
// bounded expiring cache, so idle keys vanish without a sweeper.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/app/system/metrics"
)

// MaxKeys bounds how many distinct keys one Limiter tracks. When full,
// the least recently seen key is forgotten.
const MaxKeys = 10000

// Limiter allows at most limit hits per key in a fixed window that
// starts at the key's first hit. Safe for concurrent use.
type Limiter struct {
	mu     sync.Mutex
	counts *expirable.LRU[string, *int]
	limit  int
}

// New returns a limiter allowing limit hits per window.
func New(limit int, window time.Duration) *Limiter {
	if limit < 1 {
		limit = 1
	}
	return &Limiter{
		counts: expirable.NewLRU[string, *int](MaxKeys, nil, window),
		limit:  limit,
	}
}

// Allow counts a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, ok := l.counts.Get(key)
	if !ok {
		first := 1
		l.counts.Add(key, &first)
		return true
	}
	if *n >= l.limit {
		return false
	}
	*n++
	return true
}

// Remaining returns the hits key has left in its current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, ok := l.counts.Get(key)
	if !ok {
		return l.limit
	}
	return max(l.limit-*n, 0)
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts.Remove(key)
}

// ClientIP returns the caller's address: the first X-Forwarded-For hop,
// then X-Real-IP, then RemoteAddr without its port.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LoginLimiter throttles sign-in attempts per client IP and per
// username.
type LoginLimiter struct {
	byIP   *Limiter
	byUser *Limiter
}

// NewLoginLimiter uses 10 attempts per IP per minute and 5 per username
// per 5 minutes.
func NewLoginLimiter() *LoginLimiter {
	return NewLoginLimiterWithConfig(10, time.Minute, 5, 5*time.Minute)
}

// NewLoginLimiterWithConfig creates a login limiter with custom limits.
func NewLoginLimiterWithConfig(ipLimit int, ipWindow time.Duration, userLimit int, userWindow time.Duration) *LoginLimiter {
	return &LoginLimiter{
		byIP:   New(ipLimit, ipWindow),
		byUser: New(userLimit, userWindow),
	}
}

// Check reports whether a login attempt may proceed. When it may not,
// reason is the message to show on the form.
func (ll *LoginLimiter) Check(r *http.Request, username string) (bool, string) {
	if !ll.byIP.Allow(ClientIP(r)) {
		metrics.LoginThrottled("ip")
		return false, "Too many login attempts. Please wait a minute before trying again."
	}
	if key := userKey(username); key != "" && !ll.byUser.Allow(key) {
		metrics.LoginThrottled("username")
		return false, "Too many login attempts for this account. Please wait a few minutes."
	}
	return true, ""
}

// ResetUser clears the per-account counter after a successful login.
func (ll *LoginLimiter) ResetUser(username string) {
	if key := userKey(username); key != "" {
		ll.byUser.Reset(key)
	}
}

func userKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
