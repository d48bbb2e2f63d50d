package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/api"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/infrastructure"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/database"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/middleware"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/pagination"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/storage"
)

func validConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Agent: config.AgentConfig{
			Provider: "ollama",
			BaseURL:  "http://localhost:11434",
			Model:    "llama3.1:8b",
		},
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "15m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "primeleads",
			User:            "primeleads",
			Password:        "primeleads",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			Provider: storage.ProviderLocal,
			Root:     t.TempDir(),
		},
		API: config.APIConfig{
			BasePath:    "/api",
			MaxBodySize: "1MB",
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
			Pagination: pagination.Config{
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
			OpenAPI: openapi.Config{Title: "PrimeLeads API"},
		},
		RAG: config.RAGConfig{
			OllamaURL:  "http://localhost:11434",
			EmbedModel: "nomic-embed-text",
			TopK:       4,
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}

	if err := cfg.Pipeline.Finalize(); err != nil {
		t.Fatalf("pipeline finalize: %v", err)
	}
	return cfg
}

func setupInfra(t *testing.T, cfg *config.Config) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	return infra
}

func TestNewModule(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	m, domain, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
	if domain.Chat == nil || domain.Recruiting == nil || domain.Workflow == nil {
		t.Error("domain systems missing")
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig(t)
	infra := setupInfra(t, cfg)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.Pagination.DefaultPageSize != 20 {
		t.Errorf("pagination default page size: got %d, want 20", runtime.Pagination.DefaultPageSize)
	}
	if runtime.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination max page size: got %d, want 100", runtime.Pagination.MaxPageSize)
	}
	if runtime.Pipeline.HotThreshold != cfg.Pipeline.HotThreshold {
		t.Errorf("pipeline hot threshold: got %v", runtime.Pipeline.HotThreshold)
	}
	if runtime.Logger == nil {
		t.Error("runtime logger is nil")
	}
	if runtime.Database == nil {
		t.Error("runtime database is nil")
	}
	if runtime.Storage == nil {
		t.Error("runtime storage is nil")
	}
	if runtime.Lifecycle == nil {
		t.Error("runtime lifecycle is nil")
	}
	if runtime.LLM == nil {
		t.Error("runtime llm is nil")
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig(t)
	runtime := api.NewRuntime(cfg, setupInfra(t, cfg))

	domain, err := api.NewDomain(runtime)
	if err != nil {
		t.Fatalf("NewDomain() error = %v", err)
	}
	if domain.Prompts == nil || domain.Runs == nil {
		t.Fatal("NewDomain() left repositories nil")
	}
}

func TestNewDomainInvalidOllamaURL(t *testing.T) {
	cfg := validConfig(t)
	cfg.RAG.OllamaURL = "://bad"
	runtime := api.NewRuntime(cfg, setupInfra(t, cfg))

	if _, err := api.NewDomain(runtime); err == nil {
		t.Fatal("expected error for invalid ollama url")
	}
}

func serve(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	m, _, err := api.NewModule(cfg, setupInfra(t, cfg))
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	return http.HandlerFunc(m.Serve)
}

func TestRequestValidation(t *testing.T) {
	h := serve(t, validConfig(t))

	tests := []struct {
		path string
		body string
		want string
	}{
		{"/api/leads", `{}`, "missing 'website_url' in request body"},
		{"/api/jobDescription", `{"jd_text": "  "}`, "missing 'jd_text' in request body"},
		{"/api/chat", `{"question": ""}`, "missing 'question' in request body"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("POST", tt.path, strings.NewReader(tt.body)))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body: got %s, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	cfg := validConfig(t)
	cfg.API.MaxBodySize = "16B"
	h := serve(t, cfg)

	body := `{"website_url": "https://` + strings.Repeat("a", 64) + `.com"}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/leads", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestArtifacts(t *testing.T) {
	cfg := validConfig(t)
	h := serve(t, cfg)

	path := filepath.Join(cfg.Storage.Root, "Acme_search_queries_20250307_090405.json")
	if err := os.WriteFile(path, []byte(`[{"query":"site:linkedin.com/in CTO"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("download", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/artifacts/Acme_search_queries_20250307_090405.json", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type: got %s", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Acme_search_queries") {
			t.Errorf("content-disposition: got %s", cd)
		}
		body, _ := io.ReadAll(rec.Body)
		if !strings.Contains(string(body), "linkedin") {
			t.Errorf("body: got %s", body)
		}
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/artifacts/nope.pdf", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})
}

func TestOpenAPISpec(t *testing.T) {
	h := serve(t, validConfig(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	for _, path := range []string{`"/leads"`, `"/jobDescription"`, `"/chat"`, `"/runs/{id}"`, `"/artifacts/{key}"`} {
		if !strings.Contains(body, path) {
			t.Errorf("spec missing path %s", path)
		}
	}
}
