// Package storage persists generated artifacts to the local filesystem or Azure Blob Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/lifecycle"
)

// System manages artifact storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that prepares the backing store.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to the artifact at key with the specified content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the artifact at key. The caller must close the reader.
	// Returns ErrNotFound if the artifact does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the artifact at key. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an artifact exists at key.
	Exists(ctx context.Context, key string) (bool, error)
	// Locate returns the path or URL a reader can use to reach the artifact at key.
	Locate(key string) string
}

// New creates the storage system selected by cfg.Provider.
// No I/O happens until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "storage", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderLocal, "":
		return newLocal(cfg.Root, logger), nil
	case ProviderAzure:
		return newAzure(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
