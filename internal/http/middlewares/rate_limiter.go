package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// idleClientTTL is how long a client's bucket is kept after its last request.
// A bucket refills completely within a minute, so dropping it later loses nothing.
const idleClientTTL = 5 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters holds one token bucket per client key and sweeps idle
// buckets on access.
type clientLimiters struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	perMinute int
	idle      time.Duration
	lastSweep time.Time
	clients   map[string]*client
}

func newClientLimiters(perMinute int, clock clockwork.Clock) *clientLimiters {
	return &clientLimiters{
		clock:     clock,
		perMinute: perMinute,
		idle:      idleClientTTL,
		lastSweep: clock.Now(),
		clients:   make(map[string]*client),
	}
}

func (l *clientLimiters) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if now.Sub(l.lastSweep) >= l.idle {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) >= l.idle {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60.0), l.perMinute)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (l *clientLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimiter applies a per-client token bucket refilled at perMinute tokens
// a minute, with a burst of the same size.
func RateLimiter(perMinute int) echo.MiddlewareFunc {
	return rateLimiter(newClientLimiters(perMinute, clockwork.NewRealClock()))
}

func rateLimiter(limiters *clientLimiters) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiters.allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
