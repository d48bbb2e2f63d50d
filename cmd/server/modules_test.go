package main

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/infrastructure"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/metrics"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/lifecycle"
)

func newTestInfra(withMetrics bool) (*infrastructure.Infrastructure, *config.Config) {
	cfg := &config.Config{}
	cfg.Metrics.Finalize()

	infra := &infrastructure.Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    slog.New(slog.DiscardHandler),
	}
	if withMetrics {
		infra.Metrics = metrics.New(&cfg.Metrics)
	}
	return infra, cfg
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	infra, cfg := newTestInfra(false)
	rec := get(t, buildRouter(infra, cfg), "/healthz")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body: got %s", rec.Body.String())
	}
}

func TestReadyz(t *testing.T) {
	infra, cfg := newTestInfra(false)
	router := buildRouter(infra, cfg)

	if rec := get(t, router, "/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("before startup: got %d, want 503", rec.Code)
	}

	infra.Lifecycle.WaitForStartup()

	if rec := get(t, router, "/readyz"); rec.Code != http.StatusOK {
		t.Errorf("after startup: got %d, want 200", rec.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		infra, cfg := newTestInfra(true)
		infra.Metrics.ChatRequest("answered")

		rec := get(t, buildRouter(infra, cfg), "/metrics")
		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "primeleads_") {
			t.Error("exposition missing primeleads collectors")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		infra, cfg := newTestInfra(false)
		if rec := get(t, buildRouter(infra, cfg), "/metrics"); rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})
}
