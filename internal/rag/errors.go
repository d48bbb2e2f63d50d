package rag

import (
	"errors"
	"net/http"
)

var (
	ErrEmptyQuestion    = errors.New("missing 'question' in request body")
	ErrNoDocuments      = errors.New("no pdf or markdown files found")
	ErrEmbedFailed      = errors.New("embedding failed")
	ErrDimension        = errors.New("embedding dimension mismatch")
	ErrInvalidVerdict   = errors.New("invalid evaluation result: cannot determine true or false")
	ErrNoCases          = errors.New("no evaluation cases")
	ErrTranscribeFailed = errors.New("page transcription failed")
)

// MapHTTPStatus maps chat errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyQuestion) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
