package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/obioma/drugscan-api/catalog"
	"github.com/obioma/drugscan-api/config"
	"github.com/obioma/drugscan-api/extractor"
	"github.com/obioma/drugscan-api/handlers"
	"github.com/obioma/drugscan-api/health"
	"github.com/obioma/drugscan-api/logging"
	"github.com/obioma/drugscan-api/matcher"
	"github.com/obioma/drugscan-api/safety"
	"github.com/obioma/drugscan-api/validation"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logging.InitLogger("")

	container := catalog.NewContainer()
	cat := catalog.New(container, nil, nil)
	if err := cat.Load(context.Background()); err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}

	fuzzyMatcher := matcher.NewFuzzyMatcher(container)
	handler := handlers.NewHTTPHandler(
		cat,
		extractor.NewFieldExtractor(),
		fuzzyMatcher,
		safety.NewPregnancyClassifier(fuzzyMatcher),
		validation.NewInputValidator(),
		health.NewHealthChecker(container),
	)

	cfg := &config.Config{
		Port:           "8000",
		Address:        "127.0.0.1",
		Env:            "test",
		MaxRequestBody: 1048576,
		MaxHeaderSize:  1048576,
	}

	return NewServer(cfg, handler)
}

func localRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "127.0.0.1:54321"
	return req
}

func TestServerRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path     string
		expected int
	}{
		{"/health", http.StatusOK},
		{"/catalog", http.StatusOK},
		{"/catalog/1", http.StatusOK},
		{"/search/Paracetamol", http.StatusOK},
		{"/drug/nafdac/A4-0945L", http.StatusOK},
		{"/drug/id/ng-panadol-500", http.StatusOK},
		{"/safety/ng-advil-200/third", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/no-such-route", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, localRequest(http.MethodGet, tt.path))
			if rec.Code != tt.expected {
				t.Errorf("GET %s: status = %d, expected %d", tt.path, rec.Code, tt.expected)
			}
		})
	}
}

func TestDocumentationRoutes(t *testing.T) {
	// ServeFile paths are relative to the repo root.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(".."); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	s := newTestServer(t)

	tests := []struct {
		path        string
		contentType string
	}{
		{"/", "text/html"},
		{"/docs", "text/html"},
		{"/docs/openapi.yaml", ""},
		{"/favicon.ico", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, localRequest(http.MethodGet, tt.path))
			if rec.Code != http.StatusOK {
				t.Fatalf("GET %s: status = %d, expected 200", tt.path, rec.Code)
			}
			if rec.Body.Len() == 0 {
				t.Errorf("GET %s: empty body", tt.path)
			}
			if tt.contentType != "" && !strings.HasPrefix(rec.Header().Get("Content-Type"), tt.contentType) {
				t.Errorf("GET %s: Content-Type = %q, expected %q prefix", tt.path, rec.Header().Get("Content-Type"), tt.contentType)
			}
		})
	}
}

func TestServerBlocksPublicDirectAccess(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.9:4321"
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, expected 403", rec.Code)
	}
}

func TestServerRateLimitHeaders(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, localRequest(http.MethodGet, "/health"))

	if rec.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("expected X-RateLimit-Limit header")
	}
	if rec.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("expected X-RateLimit-Remaining header")
	}
}
