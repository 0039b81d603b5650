package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rateLimited(t *testing.T, h http.Handler, remoteAddr string, n int) []int {
	t.Helper()
	codes := make([]int, 0, n)
	for i := 0; i < n; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews/1", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	return codes
}

func TestRateLimit_WithinBurst_Passes(t *testing.T) {
	var buf bytes.Buffer
	h := RateLimit(1, 5, newTestLogger(&buf))(okHandler())

	for i, code := range rateLimited(t, h, "192.168.1.1:1234", 5) {
		assert.Equal(t, http.StatusOK, code, "request %d", i+1)
	}
}

func TestRateLimit_OverBurst_Returns429(t *testing.T) {
	var buf bytes.Buffer
	h := RateLimit(0.001, 2, newTestLogger(&buf))(okHandler())

	codes := rateLimited(t, h, "10.0.0.1:1234", 3)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Contains(t, buf.String(), "rate limit exceeded")
}

func TestRateLimit_IndependentPerIP(t *testing.T) {
	var buf bytes.Buffer
	h := RateLimit(0.001, 1, newTestLogger(&buf))(okHandler())

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, rateLimited(t, h, "10.0.0.1:1", 2))
	assert.Equal(t, []int{http.StatusOK}, rateLimited(t, h, "10.0.0.2:1", 1))
}

func TestRateLimit_Disabled(t *testing.T) {
	var buf bytes.Buffer
	h := RateLimit(0, 0, newTestLogger(&buf))(okHandler())

	for _, code := range rateLimited(t, h, "10.0.0.1:1", 50) {
		assert.Equal(t, http.StatusOK, code)
	}
}

func TestVisitorStore_SweepsIdleVisitors(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newVisitorStore(1, 1, time.Minute)
	s.now = func() time.Time { return now }
	s.lastSweep = now

	s.allow("10.0.0.1")
	s.allow("10.0.0.2")
	assert.Equal(t, 2, s.size())

	now = now.Add(2 * time.Minute)
	s.allow("10.0.0.3")
	assert.Equal(t, 1, s.size())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "10.1.1.1:555", "10.1.1.1"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.1.1.1:555", "203.0.113.7"},
		{"invalid forwarded", map[string]string{"X-Forwarded-For": "garbage", "X-Real-IP": "198.51.100.2"}, "10.1.1.1:555", "198.51.100.2"},
		{"no port", nil, "10.1.1.1", "10.1.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
