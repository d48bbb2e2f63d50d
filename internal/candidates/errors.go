package candidates

import (
	"errors"
	"net/http"
)

var (
	ErrMissingJD     = errors.New("missing 'jd_text' in request body")
	ErrSearchFailed  = errors.New("every candidate search failed")
	ErrNoScore       = errors.New("no fit score in response")
	ErrPipelineState = errors.New("pipeline produced no candidate state")
)

// MapHTTPStatus maps recruiting errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrMissingJD) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
