// Package handlers holds the JSON request and response helpers every API
// handler shares. Error bodies are always {"error": "..."}.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// ErrEmptyBody reports a request with no JSON value in its body.
var ErrEmptyBody = errors.New("empty request body")

// ErrorBody is the payload written by RespondError.
type ErrorBody struct {
	Error string `json:"error"`
}

func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError writes err with status. 5xx is logged at Error, anything
// lower at Warn since the caller sent something we refused.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, "request failed", "status", status, "error", err)
	RespondJSON(w, status, ErrorBody{Error: err.Error()})
}

// DecodeJSON reads exactly one JSON value from the body into T. A missing
// or whitespace-only body is ErrEmptyBody; trailing data after the value
// is rejected.
func DecodeJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil || r.Body == http.NoBody {
		return v, ErrEmptyBody
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, ErrEmptyBody
		}
		return v, fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return v, errors.New("invalid request body: trailing data after JSON value")
	}
	return v, nil
}
