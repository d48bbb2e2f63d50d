package runs

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound    = errors.New("run not found")
	ErrDuplicate   = errors.New("run already exists")
	ErrInvalidKind = errors.New("invalid run kind")
	ErrNotRunning  = errors.New("run is not running")
)

// MapHTTPStatus maps run domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrNotRunning) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidKind) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
