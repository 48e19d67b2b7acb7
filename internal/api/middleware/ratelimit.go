package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/milestonemotors/motors/internal/metrics"
)

// bucketIdleTTL is how long an IP's bucket survives without traffic
// before the sweeper drops it.
const bucketIdleTTL = 10 * time.Minute

// LoginLimiter throttles credential-guessing by giving each client IP
// its own token bucket. Buckets for idle IPs are swept on the fly so
// the map does not grow without bound.
type LoginLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*ipBucket
	perSecond rate.Limit
	burst     int
	lastSweep time.Time
	nowFunc   func() time.Time
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiterOption configures the LoginLimiter.
type LoginLimiterOption func(*LoginLimiter)

// WithLoginLimiterNowFunc overrides the time function for testing.
func WithLoginLimiterNowFunc(f func() time.Time) LoginLimiterOption {
	return func(l *LoginLimiter) {
		l.nowFunc = f
	}
}

// NewLoginLimiter creates a per-IP limiter allowing perSecond sustained
// attempts with the given burst.
func NewLoginLimiter(perSecond float64, burst int, opts ...LoginLimiterOption) *LoginLimiter {
	l := &LoginLimiter{
		buckets:   make(map[string]*ipBucket),
		perSecond: rate.Limit(perSecond),
		burst:     burst,
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.nowFunc()
	return l
}

// Allow reports whether ip may attempt a login right now.
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()
	l.sweep(now)

	b, ok := l.buckets[ip]
	if !ok {
		b = &ipBucket{limiter: rate.NewLimiter(l.perSecond, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1)
}

// sweep drops idle buckets. Called with the lock held, at most once per
// TTL interval.
func (l *LoginLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < bucketIdleTTL {
		return
	}
	l.lastSweep = now

	for ip, b := range l.buckets {
		if now.Sub(b.lastSeen) >= bucketIdleTTL {
			delete(l.buckets, ip)
		}
	}
}

// Limit returns Echo middleware that rejects over-limit login attempts
// with 429.
func (l *LoginLimiter) Limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				metrics.LoginThrottledTotal.Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "too many login attempts, slow down",
				})
			}
			return next(c)
		}
	}
}
