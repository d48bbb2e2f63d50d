package search

import (
	"errors"
	"fmt"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
)

var (
	ErrMissingAPIKey   = fmt.Errorf("search: api key required (%s)", config.EnvSearchAPIKey)
	ErrMissingEngineID = fmt.Errorf("search: engine id required (%s)", config.EnvSearchEngineID)
	ErrEmptyQuery      = errors.New("search: empty query")
	ErrSearchFailed    = errors.New("search: request failed")
)
