package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hiresight/internal/errors"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(60, time.Minute, 2, nil)
	defer limiter.Close()

	// Burst capacity of 2 allows two immediate requests
	if !limiter.Allow("ip:10.0.0.1") {
		t.Error("first request should be allowed")
	}
	if !limiter.Allow("ip:10.0.0.1") {
		t.Error("second request within burst should be allowed")
	}
	if limiter.Allow("ip:10.0.0.1") {
		t.Error("third immediate request should be rejected")
	}

	// A different key gets its own bucket
	if !limiter.Allow("ip:10.0.0.2") {
		t.Error("request from a different key should be allowed")
	}
}

func TestRateLimiterStats(t *testing.T) {
	limiter := NewRateLimiter(120, time.Minute, 5, nil)
	defer limiter.Close()

	limiter.Allow("api:key-one")
	limiter.Allow("ip:10.0.0.1")

	stats := limiter.GetStats()
	if stats["active_limiters"] != 2 {
		t.Errorf("active_limiters = %v, want 2", stats["active_limiters"])
	}
	if stats["rate_per_minute"] != 120.0 {
		t.Errorf("rate_per_minute = %v, want 120", stats["rate_per_minute"])
	}
	if stats["burst_capacity"] != 5 {
		t.Errorf("burst_capacity = %v, want 5", stats["burst_capacity"])
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		byAPIKey bool
		byIP     bool
		headers  map[string]string
		want     string
	}{
		{
			name:     "api key header",
			byAPIKey: true,
			headers:  map[string]string{"X-API-Key": "secret-key"},
			want:     "api:secret-key",
		},
		{
			name:     "bearer token fallback",
			byAPIKey: true,
			headers:  map[string]string{"Authorization": "Bearer token-123"},
			want:     "api:token-123",
		},
		{
			name: "ip fallback",
			byIP: true,
			want: "ip:192.0.2.1",
		},
		{
			name:     "api key preferred over ip",
			byAPIKey: true,
			byIP:     true,
			headers:  map[string]string{"X-API-Key": "secret-key"},
			want:     "api:secret-key",
		},
		{
			name: "no strategy",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			if got := getRateLimitKey(r, tt.byAPIKey, tt.byIP); got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "x-forwarded-for first ip",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			remoteAddr: "10.0.0.9:1234",
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			headers:    map[string]string{"X-Real-IP": "203.0.113.8"},
			remoteAddr: "10.0.0.9:1234",
			want:       "203.0.113.8",
		},
		{
			name:       "remote addr host",
			remoteAddr: "10.0.0.9:1234",
			want:       "10.0.0.9",
		},
		{
			name:       "invalid forwarded header ignored",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			remoteAddr: "10.0.0.9:1234",
			want:       "10.0.0.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/health", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimitMiddlewareDisabled(t *testing.T) {
	logger, _ := errors.New("error")
	s := &Server{Logger: logger}

	called := false
	handler := s.rateLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	if !called {
		t.Error("handler should be called when rate limiting is disabled")
	}
}
