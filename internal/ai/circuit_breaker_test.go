package ai

import (
	"testing"
	"time"

	"hiresight/internal/config"

	"google.golang.org/genai"
)

func breakerConfig(cb config.CircuitBreakerConfig) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider:       "gemini",
		Model:          "gemini-2.0-flash-lite",
		CircuitBreaker: cb,
	}
}

func TestCircuitBreakerNaming(t *testing.T) {
	cfg := breakerConfig(config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	})

	cb := NewAICircuitBreaker("Extract", cfg, nil)
	if cb == nil {
		t.Fatal("circuit breaker should not be nil when enabled")
	}

	stats := cb.GetStats()
	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("circuit breaker name not found")
	}
	if name != "AI-Extract" {
		t.Errorf("name = %q, want AI-Extract", name)
	}

	state, ok := stats["state"].(string)
	if !ok {
		t.Fatal("circuit breaker state not found")
	}
	if state != "closed" {
		t.Errorf("initial state = %q, want closed", state)
	}

	enabled, ok := stats["enabled"].(bool)
	if !ok || !enabled {
		t.Error("circuit breaker should report enabled")
	}
	if !cb.IsHealthy() {
		t.Error("circuit breaker should be healthy initially")
	}
}

func TestModelCircuitBreakerNaming(t *testing.T) {
	cfg := breakerConfig(config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	})

	mb := NewModelCircuitBreaker("Extract", cfg, nil)
	if mb == nil {
		t.Fatal("model circuit breaker should not be nil when enabled")
	}

	stats := mb.GetModelStats()
	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("model circuit breaker name not found")
	}
	if name != "AI-Model-Extract" {
		t.Errorf("name = %q, want AI-Model-Extract", name)
	}
	if !mb.IsModelHealthy() {
		t.Error("model circuit breaker should be healthy initially")
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	cfg := breakerConfig(config.CircuitBreakerConfig{Enabled: false})

	cb := NewAICircuitBreaker("Extract", cfg, nil)
	if cb != nil {
		t.Fatal("circuit breaker should be nil when disabled")
	}

	// Nil breaker passes calls through and reports healthy
	stats := cb.GetStats()
	if enabled, _ := stats["enabled"].(bool); enabled {
		t.Error("disabled breaker must report enabled=false")
	}
	if !cb.IsHealthy() {
		t.Error("nil breaker should report healthy")
	}

	called := false
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !called {
		t.Error("Execute() must pass through when breaker is nil")
	}
}
