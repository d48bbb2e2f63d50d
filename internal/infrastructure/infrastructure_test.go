package infrastructure_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/infrastructure"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/database"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/storage"
)

func validConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
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
		Agent: config.AgentConfig{
			Provider: "ollama",
			BaseURL:  "http://localhost:11434",
			Model:    "llama3.1:8b",
		},
		Metrics: config.MetricsConfig{Namespace: "primeleads", Path: "/metrics"},
		Version: "0.1.0",
	}
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(validConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if infra.Lifecycle == nil {
		t.Error("Lifecycle is nil")
	}
	if infra.Logger == nil {
		t.Error("Logger is nil")
	}
	if infra.Database == nil {
		t.Error("Database is nil")
	}
	if infra.Storage == nil {
		t.Error("Storage is nil")
	}
	if infra.LLM == nil {
		t.Fatal("LLM is nil")
	}
	if got := infra.LLM.Model(); got != "llama3.1:8b" {
		t.Errorf("LLM model: got %s, want llama3.1:8b", got)
	}
	if infra.Metrics != nil {
		t.Error("Metrics should be nil when disabled")
	}
}

func TestNewMetricsEnabled(t *testing.T) {
	cfg := validConfig(t)
	cfg.Metrics.Enabled = true

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if infra.Metrics == nil {
		t.Fatal("Metrics is nil")
	}
}

func TestNewDatabaseConnection(t *testing.T) {
	infra, err := infrastructure.New(validConfig(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := infra.Database.Connection()
	if conn == nil {
		t.Fatal("Database.Connection() returned nil")
	}
	conn.Close()
}

func TestNewInvalidStorageConfig(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage = storage.Config{
		Provider:         storage.ProviderAzure,
		ContainerName:    "artifacts",
		ConnectionString: "not-a-connection-string",
	}

	_, err := infrastructure.New(cfg)
	if err == nil {
		t.Fatal("expected error for invalid storage connection string")
	}
}

func TestNewUnknownStorageProvider(t *testing.T) {
	cfg := validConfig(t)
	cfg.Storage.Provider = "s3"

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for unknown storage provider")
	}
}

func TestScoped(t *testing.T) {
	var buf bytes.Buffer
	infra, err := infrastructure.NewWithLogger(validConfig(t), slog.New(slog.NewTextHandler(&buf, nil)))
	if err != nil {
		t.Fatalf("NewWithLogger() error = %v", err)
	}

	scoped := infra.Scoped("bot")
	scoped.Logger.Info("hello")

	if !strings.Contains(buf.String(), "module=bot") {
		t.Errorf("scoped log missing module: %s", buf.String())
	}
	if scoped.Database != infra.Database || scoped.Lifecycle != infra.Lifecycle {
		t.Error("scoped copy should share systems")
	}
	if scoped == infra {
		t.Error("Scoped should return a copy")
	}

	buf.Reset()
	infra.Logger.Info("plain")
	if strings.Contains(buf.String(), "module=") {
		t.Errorf("original logger changed: %s", buf.String())
	}
}
