package storage_test

import (
	"strings"
	"testing"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/storage"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := storage.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Provider != storage.ProviderLocal {
		t.Errorf("provider: got %s, want local", cfg.Provider)
	}
	if cfg.Root != "outputs" {
		t.Errorf("root: got %s, want outputs", cfg.Root)
	}
	if cfg.ContainerName != "artifacts" {
		t.Errorf("container_name: got %s, want artifacts", cfg.ContainerName)
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_PROVIDER", "azure")
	t.Setenv("TEST_CONTAINER", "leads")
	t.Setenv("TEST_CONN", "override-connection")

	env := &storage.Env{
		Provider:         "TEST_PROVIDER",
		ContainerName:    "TEST_CONTAINER",
		ConnectionString: "TEST_CONN",
	}

	cfg := storage.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Provider != storage.ProviderAzure {
		t.Errorf("provider: got %s, want azure", cfg.Provider)
	}
	if cfg.ContainerName != "leads" {
		t.Errorf("container_name: got %s, want leads", cfg.ContainerName)
	}
	if cfg.ConnectionString != "override-connection" {
		t.Errorf("connection_string: got %s, want override-connection", cfg.ConnectionString)
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr string
	}{
		{"azure missing connection_string", storage.Config{Provider: "azure"}, "connection_string required"},
		{"unknown provider", storage.Config{Provider: "ftp"}, "unknown storage provider"},
		{"local defaults", storage.Config{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := storage.Config{Provider: "local", Root: "outputs"}
	overlay := storage.Config{Root: "/var/lib/primeleads"}

	base.Merge(&overlay)

	if base.Provider != "local" {
		t.Errorf("provider should remain local, got %s", base.Provider)
	}
	if base.Root != "/var/lib/primeleads" {
		t.Errorf("root: got %s, want /var/lib/primeleads", base.Root)
	}
}

func TestFinalizeNormalizesProvider(t *testing.T) {
	cfg := storage.Config{Provider: " Local "}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.Provider != storage.ProviderLocal {
		t.Errorf("provider: got %q, want local", cfg.Provider)
	}
}

func TestFinalizeAzureReportsAllMissing(t *testing.T) {
	cfg := storage.Config{Provider: "azure", ContainerName: ""}
	err := cfg.Finalize(nil)
	if err == nil {
		t.Fatal("expected error")
	}
	// container_name defaults, so only the connection string is missing
	if strings.Contains(err.Error(), "container_name") {
		t.Errorf("unexpected container_name error: %v", err)
	}
	if !strings.Contains(err.Error(), "connection_string required") {
		t.Errorf("error %q missing connection_string", err)
	}
}
