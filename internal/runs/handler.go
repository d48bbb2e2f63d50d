package runs

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/handlers"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/pagination"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/routes"
)

// Handler provides HTTP endpoints for run history.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "runs"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for run endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/runs",
		Tags:   []string{"Runs"},
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: h.List,
				OpenAPI: &openapi.Operation{
					Summary: "List runs",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("page", "integer", "Page number", false),
						openapi.QueryParam("page_size", "integer", "Results per page", false),
						openapi.QueryParam("kind", "string", "website or job_description", false),
						openapi.QueryParam("status", "string", "running, completed or failed", false),
						openapi.QueryParam("company_name", "string", "Company name contains", false),
						openapi.QueryParam("since", "string", "Started at or after (RFC 3339 or YYYY-MM-DD)", false),
						openapi.QueryParam("until", "string", "Started before (RFC 3339 or YYYY-MM-DD)", false),
						openapi.QueryParam("sort", "string", "Comma-separated fields, '-' prefix for descending", false),
					},
					Responses: map[int]*openapi.Response{
						200: {Description: "A page of runs"},
					},
				},
			},
			{
				Method:  "GET",
				Pattern: "/{id}",
				Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Find a run",
					Parameters: []*openapi.Parameter{openapi.IDParam("id", "Run ID")},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("The run", "Run"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method:  "POST",
				Pattern: "/search",
				Handler: h.Search,
				OpenAPI: &openapi.Operation{
					Summary:     "Search runs",
					RequestBody: openapi.RequestBodyJSON("PageRequest", false),
					Responses: map[int]*openapi.Response{
						200: {Description: "A page of runs"},
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
		},
		Schemas: map[string]*openapi.Schema{
			"Run": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"id":           {Type: "string", Format: "uuid"},
					"kind":         {Type: "string", Enum: openapi.Enum(KindWebsite, KindJobDescription)},
					"input":        {Type: "string"},
					"status":       {Type: "string", Enum: openapi.Enum(StatusRunning, StatusCompleted, StatusFailed)},
					"company_name": {Type: "string"},
					"summary":      {Type: "object"},
					"error":        {Type: "string"},
					"started_at":   {Type: "string", Format: "date-time"},
					"completed_at": {Type: "string", Format: "date-time"},
				},
			},
		},
	}
}

// List returns a paginated list of runs with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single run by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	run, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, run)
}

// Search accepts a JSON body with pagination and filter criteria.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
