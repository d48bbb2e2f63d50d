// Package reports renders and stores the artifacts a pipeline run produces:
// JSON dumps of stage output and PDF reports built from a simple document
// model of headings, paragraphs, bullets and tables.
package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/formatting"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/storage"
)

// TimestampLayout formats the timestamp embedded in artifact file names.
const TimestampLayout = "20060102_150405"

// Kind identifies the format of a stored artifact.
type Kind string

const (
	KindJSON Kind = "json"
	KindPDF  Kind = "pdf"
)

// Artifact describes a file written during a pipeline run.
// Location is the path or URL reported by the storage provider.
type Artifact struct {
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Pages    int    `json:"pages,omitempty"`
}

// Timestamp formats t for use in artifact names.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Writer renders artifacts and uploads them to storage.
type Writer struct {
	store  storage.System
	logger *slog.Logger
}

// New creates a Writer backed by store.
func New(store storage.System, logger *slog.Logger) *Writer {
	return &Writer{
		store:  store,
		logger: logger.With("system", "reports"),
	}
}

// WriteJSON stores v as indented JSON under name.
func (w *Writer) WriteJSON(ctx context.Context, name string, v any) (Artifact, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: marshal %s: %w", ErrWriteFailed, name, err)
	}

	if err := w.store.Upload(ctx, name, bytes.NewReader(data), "application/json"); err != nil {
		return Artifact{}, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	a := Artifact{Kind: KindJSON, Name: name, Location: w.store.Locate(name)}
	w.logger.InfoContext(ctx, "artifact written", "name", name, "kind", a.Kind, "size", formatting.FormatBytes(int64(len(data)), 1))
	return a, nil
}

// WritePDF renders doc and stores it under name. The rendered bytes are
// read back with pdfcpu so a malformed document is reported before upload.
func (w *Writer) WritePDF(ctx context.Context, name string, doc Document) (Artifact, error) {
	data, err := Render(doc)
	if err != nil {
		return Artifact{}, err
	}

	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: validate %s: %w", ErrRenderFailed, name, err)
	}

	if err := w.store.Upload(ctx, name, bytes.NewReader(data), "application/pdf"); err != nil {
		return Artifact{}, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	a := Artifact{Kind: KindPDF, Name: name, Location: w.store.Locate(name), Pages: pages}
	w.logger.InfoContext(ctx, "artifact written", "name", name, "kind", a.Kind, "pages", pages, "size", formatting.FormatBytes(int64(len(data)), 1))
	return a, nil
}
