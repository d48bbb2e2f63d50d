package rag

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"
)

// Split cuts pages into overlapping chunks and assigns IDs. The index
// restarts at 0 for every page.
func Split(pages []Page, size, overlap int) ([]Chunk, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(size),
		textsplitter.WithChunkOverlap(overlap),
	)

	var chunks []Chunk
	for _, p := range pages {
		parts, err := splitter.SplitText(p.Text)
		if err != nil {
			return nil, fmt.Errorf("split %s page %d: %w", p.Source, p.Number, err)
		}

		index := 0
		for _, part := range parts {
			if part == "" {
				continue
			}
			chunks = append(chunks, Chunk{
				ID:      ChunkID(p.Source, p.Number, index),
				Source:  p.Source,
				Page:    p.Number,
				Content: part,
			})
			index++
		}
	}
	return chunks, nil
}
