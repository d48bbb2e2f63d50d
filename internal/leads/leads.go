// Package leads exposes the three-stage lead workflow over HTTP.
package leads

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/runs"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/workflow"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/handlers"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/routes"
)

var ErrMissingURL = errors.New("missing 'website_url' in request body")

// Runner executes the lead workflow for a seed.
type Runner func(ctx context.Context, seed workflow.Seed) (*workflow.Result, error)

// Request is the leads endpoint body.
type Request struct {
	WebsiteURL string `json:"website_url"`
}

// Response carries the deepest typed state and its summary.
type Response struct {
	Status  string               `json:"status"`
	RunID   *uuid.UUID           `json:"run_id,omitempty"`
	State   *workflow.QueryState `json:"state"`
	Summary workflow.Summary     `json:"summary"`
}

// Handler serves the leads endpoint.
type Handler struct {
	run    Runner
	runs   runs.System
	logger *slog.Logger
}

// NewHandler creates a Handler. history may be nil.
func NewHandler(run Runner, history runs.System, logger *slog.Logger) *Handler {
	return &Handler{
		run:    run,
		runs:   history,
		logger: logger.With("handler", "leads"),
	}
}

// Routes returns the route group definition for the leads endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/leads",
		Tags:   []string{"Leads"},
		Routes: []routes.Route{
			{
				Method:  "POST",
				Pattern: "",
				Handler: h.Create,
				OpenAPI: &openapi.Operation{
					Summary:     "Run the lead workflow",
					Description: "Generates the growth report, ICPs and personas, and LinkedIn search queries for a website.",
					RequestBody: openapi.RequestBodyJSON("LeadsRequest", true),
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Workflow state and summary", "LeadsResponse"),
						400: openapi.ResponseRef("BadRequest"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
		},
		Schemas: map[string]*openapi.Schema{
			"LeadsRequest": {
				Type:       "object",
				Properties: map[string]*openapi.Schema{"website_url": {Type: "string", Example: "https://fast-automate.com"}},
				Required:   []string{"website_url"},
			},
			"LeadsResponse": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"status":  {Type: "string", Example: "success"},
					"run_id":  {Type: "string", Format: "uuid"},
					"state":   {Type: "object"},
					"summary": {Type: "object"},
				},
			},
		},
	}
}

// Create runs the workflow synchronously for the posted website URL.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[Request](r)
	url := workflow.NormalizeURL(req.WebsiteURL)
	if err != nil || url == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingURL)
		return
	}

	ctx := r.Context()

	var run *runs.Run
	if h.runs != nil {
		if run, err = h.runs.Start(ctx, runs.KindWebsite, url); err != nil {
			h.logger.WarnContext(ctx, "record run failed", "error", err)
			run = nil
		}
	}

	result, err := h.run(ctx, workflow.Seed{WebsiteURL: url})
	if err != nil {
		if run != nil {
			if _, ferr := h.runs.Fail(ctx, run.ID, err); ferr != nil {
				h.logger.WarnContext(ctx, "fail run failed", "run", run.ID, "error", ferr)
			}
		}
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	resp := Response{
		Status:  "success",
		State:   result.State,
		Summary: result.Summary,
	}

	if run != nil {
		resp.RunID = &run.ID
		if _, err := h.runs.Complete(ctx, run.ID, result.Summary.CompanyName, result.Summary); err != nil {
			h.logger.WarnContext(ctx, "complete run failed", "run", run.ID, "error", err)
		}
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
