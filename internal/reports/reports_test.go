package reports_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/reports"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/storage"
)

func newWriter(t *testing.T) (*reports.Writer, storage.System) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewLocal(t.TempDir(), logger)
	return reports.New(store, logger), store
}

func sampleDocument(rows int) reports.Document {
	table := reports.Table{
		Caption: "Top Competitor Comparison Table",
		Columns: []string{"Competitor", "Core Offering", "Strengths"},
		Widths:  []float64{1, 2, 2},
	}
	for i := range rows {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("Competitor %d", i+1),
			"Workflow automation for mid-market sales teams with a long description that wraps",
			"Fast onboarding — “best in class” \U0001F680",
		})
	}

	return reports.Document{
		Title:    "Growth Strategy & Operations Report",
		Subtitle: "Acme",
		Sections: []reports.Section{
			{Heading: "Introduction", Paragraphs: []string{"Acme sells automation software."}},
			{Heading: "Quick Wins", Level: 1, Bullets: []string{"Automate lead routing", "Add chat to pricing page"}},
			{Heading: "Competitive Review and Comparison", Tables: []reports.Table{table}},
		},
	}
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 7, 9, 4, 5, 0, time.UTC)
	assert.Equal(t, "20250307_090405", reports.Timestamp(ts))
}

func TestRender(t *testing.T) {
	data, err := reports.Render(sampleDocument(3))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "missing PDF header")
}

func TestWriteJSON(t *testing.T) {
	w, store := newWriter(t)
	ctx := context.Background()

	payload := map[string]any{"Introduction": "Acme sells automation software."}
	a, err := w.WriteJSON(ctx, "growth_report_concise_Acme_20250307_090405.json", payload)
	require.NoError(t, err)

	assert.Equal(t, reports.KindJSON, a.Kind)
	assert.Equal(t, store.Locate(a.Name), a.Location)
	assert.Zero(t, a.Pages)

	raw, err := os.ReadFile(a.Location)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, payload, got)
}

func TestWriteJSONUnsupportedValue(t *testing.T) {
	w, _ := newWriter(t)

	_, err := w.WriteJSON(context.Background(), "bad.json", map[string]any{"ch": make(chan int)})
	assert.ErrorIs(t, err, reports.ErrWriteFailed)
}

func TestWritePDF(t *testing.T) {
	w, _ := newWriter(t)
	ctx := context.Background()

	t.Run("single page", func(t *testing.T) {
		a, err := w.WritePDF(ctx, "short.pdf", sampleDocument(2))
		require.NoError(t, err)

		assert.Equal(t, reports.KindPDF, a.Kind)
		assert.Equal(t, 1, a.Pages)

		info, err := os.Stat(a.Location)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("long table breaks across pages", func(t *testing.T) {
		a, err := w.WritePDF(ctx, "long.pdf", sampleDocument(80))
		require.NoError(t, err)
		assert.Greater(t, a.Pages, 1)
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := w.WritePDF(ctx, "../escape.pdf", sampleDocument(1))
		assert.ErrorIs(t, err, storage.ErrInvalidKey)
		assert.ErrorIs(t, err, reports.ErrWriteFailed)
	})
}
