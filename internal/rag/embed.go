package rag

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/errgroup"
)

// embedWorkers bounds concurrent embedding batches.
const embedWorkers = 4

// Embedder turns texts into vectors, one per text, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Ollama embeds through an Ollama server's /api/embed endpoint.
type Ollama struct {
	client *api.Client
	model  string
}

// NewOllama creates an embedder for the server at baseURL.
func NewOllama(baseURL, model string, httpClient *http.Client) (*Ollama, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ollama url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Ollama{client: api.NewClient(u, httpClient), model: model}, nil
}

func (o *Ollama) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := o.client.Embed(ctx, &api.EmbedRequest{
		Model: o.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedFailed, err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbedFailed, len(resp.Embeddings), len(texts))
	}
	return resp.Embeddings, nil
}

// EmbedChunks fills in the Embedding of every chunk, batchSize texts per
// request with a few batches in flight. Vectors of the wrong dimension
// fail the whole call.
func EmbedChunks(ctx context.Context, e Embedder, chunks []Chunk, batchSize, dimensions int) error {
	batchSize = max(batchSize, 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedWorkers)

	for start := 0; start < len(chunks); start += batchSize {
		batch := chunks[start:min(start+batchSize, len(chunks))]

		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, c := range batch {
				texts[i] = c.Content
			}

			vectors, err := e.Embed(gctx, texts)
			if err != nil {
				return err
			}
			if len(vectors) != len(batch) {
				return fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbedFailed, len(vectors), len(batch))
			}

			for i, v := range vectors {
				if dimensions > 0 && len(v) != dimensions {
					return fmt.Errorf("%w: got %d, want %d", ErrDimension, len(v), dimensions)
				}
				batch[i].Embedding = v
			}
			return nil
		})
	}

	return g.Wait()
}
