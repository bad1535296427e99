package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bimakw/sol-portfolio/internal/testutil"
)

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		rpcHealthy     bool
		cache          *testutil.MockHealthChecker
		expectedCode   int
		expectedStatus string
		expectedRPC    string
		expectedCache  string // empty means absent
	}{
		{
			name:           "all healthy",
			rpcHealthy:     true,
			cache:          testutil.NewMockHealthChecker(true),
			expectedCode:   http.StatusOK,
			expectedStatus: "healthy",
			expectedRPC:    "healthy",
			expectedCache:  "healthy",
		},
		{
			name:           "no endpoint reachable",
			rpcHealthy:     false,
			cache:          testutil.NewMockHealthChecker(true),
			expectedCode:   http.StatusServiceUnavailable,
			expectedStatus: "unhealthy",
			expectedRPC:    "unhealthy",
			expectedCache:  "healthy",
		},
		{
			name:           "cache down degrades",
			rpcHealthy:     true,
			cache:          testutil.NewMockHealthChecker(false),
			expectedCode:   http.StatusOK,
			expectedStatus: "degraded",
			expectedRPC:    "healthy",
			expectedCache:  "unhealthy",
		},
		{
			name:           "rpc down wins over cache down",
			rpcHealthy:     false,
			cache:          testutil.NewMockHealthChecker(false),
			expectedCode:   http.StatusServiceUnavailable,
			expectedStatus: "unhealthy",
			expectedRPC:    "unhealthy",
			expectedCache:  "unhealthy",
		},
		{
			name:           "cache disabled",
			rpcHealthy:     true,
			expectedCode:   http.StatusOK,
			expectedStatus: "healthy",
			expectedRPC:    "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rpc := testutil.NewMockHealthChecker(tt.rpcHealthy)

			var handler *HealthHandler
			if tt.cache != nil {
				handler = NewHealthHandler(rpc, tt.cache)
			} else {
				handler = NewHealthHandler(rpc, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()

			handler.Health(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", ct)
			}

			var response HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if response.Status != tt.expectedStatus {
				t.Errorf("expected status %s, got %s", tt.expectedStatus, response.Status)
			}
			if response.Timestamp == "" {
				t.Error("expected non-empty timestamp")
			}
			if !strings.HasPrefix(response.Services["rpc"], tt.expectedRPC) {
				t.Errorf("expected rpc %s, got %s", tt.expectedRPC, response.Services["rpc"])
			}

			cacheState, exists := response.Services["cache"]
			if tt.expectedCache == "" {
				if exists {
					t.Error("cache should not be in services when disabled")
				}
			} else if !strings.HasPrefix(cacheState, tt.expectedCache) {
				t.Errorf("expected cache %s, got %s", tt.expectedCache, cacheState)
			}
		})
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Run("ready when an endpoint answers", func(t *testing.T) {
		handler := NewHealthHandler(testutil.NewMockHealthChecker(true), nil)

		rec := httptest.NewRecorder()
		handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		if rec.Code != http.StatusOK || rec.Body.String() != "ready" {
			t.Errorf("expected 200 ready, got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("not ready when no endpoint answers", func(t *testing.T) {
		handler := NewHealthHandler(testutil.NewMockHealthChecker(false), nil)

		rec := httptest.NewRecorder()
		handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", rec.Code)
		}
	})
}

func TestHealthHandler_Live(t *testing.T) {
	// Liveness does not depend on the RPC endpoints
	handler := NewHealthHandler(testutil.NewMockHealthChecker(false), nil)

	rec := httptest.NewRecorder()
	handler.Live(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "alive" {
		t.Errorf("expected 200 alive, got %d %q", rec.Code, rec.Body.String())
	}
}
