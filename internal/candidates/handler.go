package candidates

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/runs"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/handlers"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/routes"
)

// Runner runs the recruiting pipeline for a job description.
type Runner interface {
	Run(ctx context.Context, jd string) (*Result, error)
}

// Handler serves the job description endpoint.
type Handler struct {
	runner Runner
	runs   runs.System
	logger *slog.Logger
}

// Request is the job description endpoint body.
type Request struct {
	JDText string `json:"jd_text"`
}

// Response mirrors the pipeline result with a status and the run record ID.
type Response struct {
	Status      string     `json:"status"`
	GraphState  GraphState `json:"graph_state"`
	Summary     Summary    `json:"summary"`
	SearchError string     `json:"search_error,omitempty"`
	RunID       *uuid.UUID `json:"run_id,omitempty"`
}

// NewHandler creates a Handler. history may be nil, in which case runs are
// not recorded.
func NewHandler(runner Runner, history runs.System, logger *slog.Logger) *Handler {
	return &Handler{
		runner: runner,
		runs:   history,
		logger: logger.With("handler", "candidates"),
	}
}

// Routes returns the route group definition for recruiting endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/jobDescription",
		Tags:   []string{"Recruiting"},
		Routes: []routes.Route{
			{
				Method:  "POST",
				Pattern: "",
				Handler: h.Run,
				OpenAPI: &openapi.Operation{
					Summary:     "Source and score candidates",
					Description: "Derives search strings from a job description, finds LinkedIn profiles and buckets them by fit score.",
					RequestBody: openapi.RequestBodyJSON("JobDescription", true),
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Scored candidates and hot/warm/cold summary", "RecruitResponse"),
						400: openapi.ResponseRef("BadRequest"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
		},
		Schemas: map[string]*openapi.Schema{
			"JobDescription": {
				Type:       "object",
				Properties: map[string]*openapi.Schema{"jd_text": {Type: "string"}},
				Required:   []string{"jd_text"},
			},
			"RecruitResponse": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"status":       {Type: "string", Example: "success"},
					"graph_state":  {Type: "object"},
					"search_error": {Type: "string"},
					"summary": {
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"hot":  {Type: "integer"},
							"warm": {Type: "integer"},
							"cold": {Type: "integer"},
						},
					},
				},
			},
		},
	}
}

// Run executes the recruiting pipeline synchronously. Any problem reading
// jd_text is reported as a missing field.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[Request](r)
	if err != nil || strings.TrimSpace(req.JDText) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingJD)
		return
	}

	ctx := r.Context()
	run := h.startRun(ctx, req.JDText)

	result, err := h.runner.Run(ctx, req.JDText)
	if err != nil {
		h.failRun(ctx, run, err)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	resp := Response{
		Status:      "success",
		GraphState:  result.GraphState,
		Summary:     result.Summary,
		SearchError: result.SearchError,
	}

	if run != nil {
		resp.RunID = &run.ID
		if _, err := h.runs.Complete(ctx, run.ID, "", result.Summary); err != nil {
			h.logger.WarnContext(ctx, "complete run failed", "run", run.ID, "error", err)
		}
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) startRun(ctx context.Context, jd string) *runs.Run {
	if h.runs == nil {
		return nil
	}
	run, err := h.runs.Start(ctx, runs.KindJobDescription, jd)
	if err != nil {
		h.logger.WarnContext(ctx, "record run failed", "error", err)
		return nil
	}
	return run
}

func (h *Handler) failRun(ctx context.Context, run *runs.Run, cause error) {
	if run == nil {
		return
	}
	if _, err := h.runs.Fail(ctx, run.ID, cause); err != nil {
		h.logger.WarnContext(ctx, "fail run failed", "run", run.ID, "error", err)
	}
}
