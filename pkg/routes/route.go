package routes

import (
	"net/http"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler.
// OpenAPI is optional and only used when generating the API description.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
