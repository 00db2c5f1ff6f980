package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bobmcallan/blog-portal/internal/app"
	"github.com/bobmcallan/blog-portal/internal/common"
	"github.com/bobmcallan/blog-portal/internal/config"
	"github.com/bobmcallan/blog-portal/internal/store"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	cfg := config.NewDefaultConfig()
	cfg.Storage.Backend = "memory"

	application, err := app.New(cfg, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}

	t.Cleanup(func() {
		application.Close()
	})

	return application
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %s", body["status"])
	}
}

func TestRoutes_VersionEndpoint(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if _, ok := body["version"]; !ok {
		t.Error("expected version field in response")
	}
	if body["backend"] != application.Config.API.URL {
		t.Errorf("expected backend %s, got %s", application.Config.API.URL, body["backend"])
	}
}

func TestRoutes_NotFound(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	for _, path := range []string{"/api/nonexistent", "/"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()

		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected status 404, got %d", path, w.Code)
		}
	}
}

func TestRoutes_StateEndpoint(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("GET", "/api/state?slice=email", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var email store.EmailState
	if err := json.Unmarshal(w.Body.Bytes(), &email); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if email.Loading {
		t.Error("fresh state should not be loading")
	}
}

func TestRoutes_FlagEndpoint(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)
	application.Store.Apply(store.Reset(store.FlagEmailSent))

	req := httptest.NewRequest("POST", "/api/flags/email.isEmailSent", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if application.Store.PeekFlag(store.FlagEmailSent) {
		t.Error("POST should clear the flag")
	}
}

func TestRoutes_SessionAndNotifications(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	for _, path := range []string{"/api/session", "/api/notifications"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()

		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("%s: expected JSON response", path)
		}
	}
}

func TestRoutes_MCPInitialize(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`
	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), application.Config.MCP.Name) {
		t.Errorf("expected server name in initialize result, got %s", w.Body.String())
	}
}

func TestRoutes_MiddlewareApplied(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	// Verify correlation ID middleware is applied
	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected X-Correlation-ID header from middleware")
	}

	// Verify CORS middleware is applied
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("expected no CORS header without a configured origin")
	}
}

func TestRoutes_ForeignOriginCannotReadState(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	for _, path := range []string{"/api/state?slice=users", "/mcp"} {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()

		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("%s: expected status 403 for a foreign origin, got %d", path, w.Code)
		}
		if strings.Contains(w.Body.String(), "userAuth") {
			t.Errorf("%s: state leaked to a foreign origin", path)
		}
	}
}

func TestRoutes_ConfiguredOriginAllowed(t *testing.T) {
	application := newTestApp(t)
	application.Config.Server.AllowedOrigins = []string{"http://localhost:3000"}
	srv := New(application)

	req := httptest.NewRequest("GET", "/api/state", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected configured origin echoed, got %q", got)
	}
}

func TestRoutes_SecurityHeadersApplied(t *testing.T) {
	application := newTestApp(t)
	srv := New(application)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected X-Content-Type-Options header from security middleware")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("expected X-Frame-Options header from security middleware")
	}
	if w.Header().Get("Referrer-Policy") == "" {
		t.Error("expected Referrer-Policy header from security middleware")
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Error("expected Content-Security-Policy header from security middleware")
	}
}
