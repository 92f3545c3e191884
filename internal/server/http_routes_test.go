package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hiresight/internal/errors"
)

func newTestServer(t *testing.T, apiKeys ...string) *Server {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	keyMap := make(map[string]bool)
	for _, key := range apiKeys {
		keyMap[key] = true
	}
	return &Server{
		APIKeys: keyMap,
		Logger:  logger,
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		apiKeys    []string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "no keys configured skips auth",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid api key header",
			apiKeys:    []string{"valid-key-12345"},
			headers:    map[string]string{"X-API-Key": "valid-key-12345"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token",
			apiKeys:    []string{"valid-key-12345"},
			headers:    map[string]string{"Authorization": "Bearer valid-key-12345"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key",
			apiKeys:    []string{"valid-key-12345"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid key",
			apiKeys:    []string{"valid-key-12345"},
			headers:    map[string]string{"X-API-Key": "wrong-key"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed authorization header",
			apiKeys:    []string{"valid-key-12345"},
			headers:    map[string]string{"Authorization": "Basic dXNlcjpwYXNz"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.apiKeys...)
			handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest(http.MethodPost, "/batch", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			handler(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	s := newTestServer(t)
	s.MaxRequestSize = 32

	handler := s.requestSizeLimitMiddleware()(func(w http.ResponseWriter, r *http.Request) {
		var payload struct{}
		if err := parseJSONRequest(r, &payload); err != nil {
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	body := strings.NewReader(`{"posting": {"description": "` + strings.Repeat("x", 100) + `"}}`)
	r := httptest.NewRequest(http.MethodPost, "/analyze", body)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d for oversized body", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "request body too large") {
		t.Errorf("body = %q, want size limit error", w.Body.String())
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"1234567890abcdef", "12345678****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.in); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTaskStatusHandler(t *testing.T) {
	s := newTestServer(t)
	s.Tasks = NewTaskStore(s.Logger)
	defer s.Tasks.Close()

	task := s.Tasks.Create()

	t.Run("known task", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/tasks/"+task.ID, nil)
		w := httptest.NewRecorder()
		s.taskStatusHandler(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), task.ID) {
			t.Errorf("body should include task ID, got %q", w.Body.String())
		}
	})

	t.Run("unknown task", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/tasks/missing", nil)
		w := httptest.NewRecorder()
		s.taskStatusHandler(w, r)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("wrong method", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/tasks/"+task.ID, nil)
		w := httptest.NewRecorder()
		s.taskStatusHandler(w, r)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", w.Code)
		}
	})
}
