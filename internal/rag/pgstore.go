package rag

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pgvector/pgvector-go"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/repository"
)

// PGStore keeps chunks in the rag_chunks table with a pgvector embedding
// column. Search orders by the <-> (L2) operator.
type PGStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPGStore(db *sql.DB, logger *slog.Logger) *PGStore {
	return &PGStore{db: db, logger: logger.With("system", "rag-store")}
}

func (s *PGStore) Existing(ctx context.Context, ids []string) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(ids) == 0 {
		return found, nil
	}

	existing, err := repository.QueryMany(ctx, s.db,
		"SELECT id FROM rag_chunks WHERE id = ANY($1)",
		[]any{ids},
		func(sc repository.Scanner) (string, error) {
			var id string
			err := sc.Scan(&id)
			return id, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query existing chunks: %w", err)
	}

	for _, id := range existing {
		found[id] = true
	}
	return found, nil
}

func (s *PGStore) Add(ctx context.Context, chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	_, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO rag_chunks(id, source, page, content, embedding)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING`)
		if err != nil {
			return struct{}{}, err
		}
		defer stmt.Close()

		for _, c := range chunks {
			if _, err := stmt.ExecContext(ctx, c.ID, c.Source, c.Page, c.Content, pgvector.NewVector(c.Embedding)); err != nil {
				return struct{}{}, fmt.Errorf("insert chunk %s: %w", c.ID, err)
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("chunks stored", "count", len(chunks))
	return nil
}

func (s *PGStore) Search(ctx context.Context, vector []float32, k int) ([]Match, error) {
	q := `
		SELECT id, source, page, content, embedding <-> $1 AS distance
		FROM rag_chunks
		ORDER BY embedding <-> $1, id
		LIMIT $2`

	matches, err := repository.QueryMany(ctx, s.db, q, []any{pgvector.NewVector(vector), k}, scanMatch)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	return matches, nil
}

func (s *PGStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "TRUNCATE rag_chunks"); err != nil {
		return fmt.Errorf("reset chunks: %w", err)
	}
	s.logger.Info("chunks cleared")
	return nil
}

func scanMatch(sc repository.Scanner) (Match, error) {
	var m Match
	err := sc.Scan(&m.ID, &m.Source, &m.Page, &m.Content, &m.Distance)
	return m, err
}
