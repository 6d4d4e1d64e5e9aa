package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerClient(t *testing.T) {
	e := echo.New()
	e.Use(RateLimiter(1))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"), "buckets are per client")
}

func TestClientLimiters_RefillsOnClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := newClientLimiters(2, clock)

	assert.True(t, l.allow("a"))
	assert.True(t, l.allow("a"))
	assert.False(t, l.allow("a"))

	clock.Advance(30 * time.Second)
	assert.True(t, l.allow("a"))
	assert.False(t, l.allow("a"))
}

func TestClientLimiters_EvictsIdleClients(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l := newClientLimiters(1, clock)

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		assert.True(t, l.allow(ip))
	}
	assert.Equal(t, 3, l.size())

	clock.Advance(idleClientTTL - time.Minute)
	assert.True(t, l.allow("10.0.0.3"), "bucket refilled while waiting")
	assert.Equal(t, 3, l.size(), "nothing is idle long enough yet")

	clock.Advance(time.Minute)
	assert.True(t, l.allow("10.0.0.4"))
	assert.Equal(t, 2, l.size(), "clients idle for the full ttl are dropped")
}
