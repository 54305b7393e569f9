package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

func TestRateLimiterBurstThenReject(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	frozen := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return frozen }

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "buckets are per IP")

	frozen = frozen.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	frozen := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return frozen }

	rl.Allow("10.0.0.1")
	frozen = frozen.Add(limiterIdleTTL + time.Minute)
	rl.Allow("10.0.0.2")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.limiters, "10.0.0.1")
	assert.Contains(t, rl.limiters, "10.0.0.2")
}

func TestRateLimiterSweepsAtMostOncePerTTL(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	frozen := start
	rl.now = func() time.Time { return frozen }

	rl.Allow("10.0.0.1")
	frozen = start.Add(5 * time.Minute)
	rl.Allow("10.0.0.2")
	frozen = start.Add(12 * time.Minute)
	rl.Allow("10.0.0.3")

	rl.mu.Lock()
	assert.NotContains(t, rl.limiters, "10.0.0.1")
	assert.Contains(t, rl.limiters, "10.0.0.2")
	rl.mu.Unlock()

	// 10.0.0.2 is now idle past the TTL, but the last sweep was 4 minutes ago.
	frozen = start.Add(16 * time.Minute)
	rl.Allow("10.0.0.4")
	rl.mu.Lock()
	assert.Contains(t, rl.limiters, "10.0.0.2")
	rl.mu.Unlock()

	frozen = start.Add(22 * time.Minute)
	rl.Allow("10.0.0.5")
	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.limiters, "10.0.0.2")
	assert.Contains(t, rl.limiters, "10.0.0.3", "seen exactly one TTL ago")
	assert.Contains(t, rl.limiters, "10.0.0.4")
	assert.Contains(t, rl.limiters, "10.0.0.5")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/chat/ws", nil)
	req.RemoteAddr = "198.51.100.7:4242"
	assert.Equal(t, "198.51.100.7", ClientIP(req))

	req.Header.Set("X-Real-Ip", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	h := RateLimit(rl, logging.New("error"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/sessions", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	h.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/chat/sessions", nil)
	req.RemoteAddr = "192.0.2.10:6666"
	h.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}
