package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/formatting"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/middleware"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/pagination"
)

const (
	EnvAPIBasePath    = "PRIMELEADS_API_BASE_PATH"
	EnvAPIMaxBodySize = "PRIMELEADS_API_MAX_BODY_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PRIMELEADS_CORS_ENABLED",
	Origins:          "PRIMELEADS_CORS_ORIGINS",
	AllowedMethods:   "PRIMELEADS_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PRIMELEADS_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PRIMELEADS_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PRIMELEADS_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "PRIMELEADS_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PRIMELEADS_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "PRIMELEADS_OPENAPI_TITLE",
	Description: "PRIMELEADS_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and API description settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns the request body limit, falling back to 1MiB
// when the configured size does not parse.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	if size, err := formatting.ParseBytes(c.MaxBodySize); err == nil {
		return size
	}
	return 1 << 20
}

// Finalize resolves the API section and its nested CORS, pagination and
// OpenAPI blocks, reporting every invalid value at once.
func (c *APIConfig) Finalize() error {
	c.BasePath = or(c.BasePath, "/api")
	c.MaxBodySize = or(c.MaxBodySize, "1MB")
	envString(EnvAPIBasePath, &c.BasePath)
	envString(EnvAPIMaxBodySize, &c.MaxBodySize)
	c.BasePath = "/" + strings.Trim(c.BasePath, "/")

	var errs []error
	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		errs = append(errs, fmt.Errorf("invalid max_body_size: %w", err))
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		errs = append(errs, fmt.Errorf("cors: %w", err))
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		errs = append(errs, fmt.Errorf("pagination: %w", err))
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		errs = append(errs, fmt.Errorf("openapi: %w", err))
	}
	return errors.Join(errs...)
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	mergeString(&c.BasePath, overlay.BasePath)
	mergeString(&c.MaxBodySize, overlay.MaxBodySize)
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}
