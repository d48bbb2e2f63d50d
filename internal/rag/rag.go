// Package rag answers questions about FastAutomate from a knowledge base of
// PDF and Markdown files. Ingestion loads, splits, embeds and stores the
// files; chat retrieves the nearest chunks and asks the model.
package rag

import "fmt"

// Page is the text of one page of a source file. Markdown files are a
// single page 0.
type Page struct {
	Source string
	Number int
	Text   string
}

// Chunk is a piece of a page with its stable ID and, once embedded, its
// vector.
type Chunk struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Page      int       `json:"page"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"-"`
}

// Match is a stored chunk and its L2 distance from the query vector.
type Match struct {
	Chunk
	Distance float64 `json:"distance"`
}

// ChunkID formats the stable identifier of the index-th chunk of a page.
func ChunkID(source string, page, index int) string {
	return fmt.Sprintf("%s:%d:%d", source, page, index)
}
