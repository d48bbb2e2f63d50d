package rag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
)

// IngestReport counts what one ingestion pass did.
type IngestReport struct {
	Loaded  int `json:"loaded"`
	Chunks  int `json:"chunks"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Ingestor populates a Store from a directory of knowledge-base files.
type Ingestor struct {
	store       Store
	embedder    Embedder
	transcriber Transcriber
	cfg         config.RAGConfig
	logger      *slog.Logger
}

func NewIngestor(store Store, embedder Embedder, cfg config.RAGConfig, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		store:    store,
		embedder: embedder,
		cfg:      cfg,
		logger:   logger.With("system", "rag-ingest"),
	}
}

// WithTranscriber makes the ingestor read scanned PDF pages through t.
func (i *Ingestor) WithTranscriber(t Transcriber) *Ingestor {
	i.transcriber = t
	return i
}

// Ingest loads and splits every file in dir and stores the chunks whose
// IDs are not already present. With reset the store is emptied first.
func (i *Ingestor) Ingest(ctx context.Context, dir string, reset bool) (IngestReport, error) {
	var report IngestReport

	if reset {
		if err := i.store.Reset(ctx); err != nil {
			return report, err
		}
		i.logger.InfoContext(ctx, "store cleared")
	}

	pages, err := LoadDir(ctx, dir, i.transcriber)
	if err != nil {
		return report, err
	}
	report.Loaded = len(pages)

	chunks, err := Split(pages, i.cfg.ChunkSize, i.cfg.ChunkOverlap)
	if err != nil {
		return report, err
	}
	report.Chunks = len(chunks)

	ids := make([]string, len(chunks))
	for idx, c := range chunks {
		ids[idx] = c.ID
	}

	existing, err := i.store.Existing(ctx, ids)
	if err != nil {
		return report, err
	}

	fresh := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		if !existing[c.ID] {
			fresh = append(fresh, c)
		}
	}
	report.Skipped = len(chunks) - len(fresh)

	if len(fresh) == 0 {
		i.logger.InfoContext(ctx, "no new chunks to add", "chunks", report.Chunks)
		return report, nil
	}

	if err := EmbedChunks(ctx, i.embedder, fresh, i.cfg.BatchSize, i.cfg.Dimensions); err != nil {
		return report, fmt.Errorf("embed chunks: %w", err)
	}

	if err := i.store.Add(ctx, fresh); err != nil {
		return report, fmt.Errorf("store chunks: %w", err)
	}
	report.Added = len(fresh)

	i.logger.InfoContext(ctx, "ingestion complete",
		"pages", report.Loaded,
		"chunks", report.Chunks,
		"added", report.Added,
		"skipped", report.Skipped,
	)
	return report, nil
}
