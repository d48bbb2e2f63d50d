package rag

import (
	"context"
	"math"
	"slices"
	"sync"
)

// Store keeps embedded chunks and finds the nearest ones to a vector.
type Store interface {
	Existing(ctx context.Context, ids []string) (map[string]bool, error)
	Add(ctx context.Context, chunks []Chunk) error
	Search(ctx context.Context, vector []float32, k int) ([]Match, error)
	Reset(ctx context.Context) error
}

// MemoryStore is an in-process Store using exhaustive L2 search. It backs
// the CLI when no database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	chunks map[string]Chunk
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{chunks: make(map[string]Chunk)}
}

func (m *MemoryStore) Existing(_ context.Context, ids []string) (map[string]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := make(map[string]bool)
	for _, id := range ids {
		if _, ok := m.chunks[id]; ok {
			found[id] = true
		}
	}
	return found, nil
}

func (m *MemoryStore) Add(_ context.Context, chunks []Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range chunks {
		m.chunks[c.ID] = c
	}
	return nil
}

func (m *MemoryStore) Search(_ context.Context, vector []float32, k int) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]Match, 0, len(m.chunks))
	for _, c := range m.chunks {
		matches = append(matches, Match{Chunk: c, Distance: l2(vector, c.Embedding)})
	}

	slices.SortFunc(matches, func(a, b Match) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return compareIDs(a.ID, b.ID)
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func (m *MemoryStore) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.chunks)
	return nil
}

// Len reports the number of stored chunks.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

func l2(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

func compareIDs(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
