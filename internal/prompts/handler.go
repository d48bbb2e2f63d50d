package prompts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/handlers"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/pagination"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/routes"
)

// Handler serves the prompt catalog.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// StageContent is returned by the per-stage text endpoints.
type StageContent struct {
	Stage   Stage  `json:"stage"`
	Content string `json:"content"`
}

// PreviewRequest supplies the variables a stage prompt is composed with.
type PreviewRequest struct {
	Vars map[string]string `json:"vars"`
}

func NewHandler(sys System, logger *slog.Logger, cfg pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "prompts"),
		pagination: cfg,
	}
}

func (h *Handler) Routes() routes.Group {
	id := []*openapi.Parameter{openapi.IDParam("id", "Prompt ID")}
	stage := []*openapi.Parameter{openapi.PathParam("stage", "Pipeline stage")}
	notFound := openapi.ResponseRef("NotFound")
	badRequest := openapi.ResponseRef("BadRequest")

	return routes.Group{
		Prefix: "/prompts",
		Tags:   []string{"Prompts"},
		Routes: []routes.Route{
			{
				Method: "GET", Pattern: "", Handler: h.List,
				OpenAPI: &openapi.Operation{
					Summary: "List prompt overrides",
					Parameters: []*openapi.Parameter{
						openapi.QueryParam("page", "integer", "Page number", false),
						openapi.QueryParam("page_size", "integer", "Results per page", false),
						openapi.QueryParam("search", "string", "Matches name, description or instructions", false),
						openapi.QueryParam("stage", "string", "Stage filter", false),
						openapi.QueryParam("active", "boolean", "Active filter", false),
						openapi.QueryParam("sort", "string", "Comma-separated fields, '-' prefix for descending", false),
					},
					Responses: map[int]*openapi.Response{200: {Description: "A page of prompts"}},
				},
			},
			{
				Method: "GET", Pattern: "/stages", Handler: h.Stages,
				OpenAPI: &openapi.Operation{
					Summary:   "List stages that accept overrides",
					Responses: map[int]*openapi.Response{200: {Description: "Stage names"}},
				},
			},
			{
				Method: "GET", Pattern: "/{id}", Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Find a prompt",
					Parameters: id,
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("The prompt", "Prompt"),
						404: notFound,
					},
				},
			},
			{
				Method: "GET", Pattern: "/{stage}/instructions", Handler: h.Instructions,
				OpenAPI: &openapi.Operation{
					Summary:     "Effective instructions for a stage",
					Description: "The active override, or the built-in default when none is active.",
					Parameters:  stage,
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Stage instructions", "StageContent"),
						400: badRequest,
					},
				},
			},
			{
				Method: "GET", Pattern: "/{stage}/spec", Handler: h.Spec,
				OpenAPI: &openapi.Operation{
					Summary:    "Output spec for a stage",
					Parameters: stage,
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Stage output spec", "StageContent"),
						400: badRequest,
					},
				},
			},
			{
				Method: "POST", Pattern: "/{stage}/preview", Handler: h.Preview,
				OpenAPI: &openapi.Operation{
					Summary:     "Compose the prompt a stage would send",
					Parameters:  stage,
					RequestBody: openapi.RequestBodyJSON("PreviewRequest", false),
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Composed prompt", "StageContent"),
						400: badRequest,
					},
				},
			},
			{
				Method: "POST", Pattern: "", Handler: h.Create,
				OpenAPI: &openapi.Operation{
					Summary:     "Create a prompt override",
					RequestBody: openapi.RequestBodyJSON("PromptCommand", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Created prompt", "Prompt"),
						400: badRequest,
						409: {Description: "Name already in use"},
					},
				},
			},
			{
				Method: "PUT", Pattern: "/{id}", Handler: h.Update,
				OpenAPI: &openapi.Operation{
					Summary:     "Update a prompt override",
					Parameters:  id,
					RequestBody: openapi.RequestBodyJSON("PromptCommand", true),
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Updated prompt", "Prompt"),
						400: badRequest,
						404: notFound,
					},
				},
			},
			{
				Method: "DELETE", Pattern: "/{id}", Handler: h.Delete,
				OpenAPI: &openapi.Operation{
					Summary:    "Delete a prompt override",
					Parameters: id,
					Responses: map[int]*openapi.Response{
						204: {Description: "Deleted"},
						404: notFound,
					},
				},
			},
			{
				Method: "POST", Pattern: "/search", Handler: h.Search,
				OpenAPI: &openapi.Operation{
					Summary:     "Search prompt overrides",
					RequestBody: openapi.RequestBodyJSON("PageRequest", false),
					Responses: map[int]*openapi.Response{
						200: {Description: "A page of prompts"},
						400: badRequest,
					},
				},
			},
			{
				Method: "POST", Pattern: "/{id}/activate", Handler: h.Activate,
				OpenAPI: &openapi.Operation{
					Summary:    "Make a prompt the active override for its stage",
					Parameters: id,
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Activated prompt", "Prompt"),
						404: notFound,
					},
				},
			},
			{
				Method: "POST", Pattern: "/{id}/deactivate", Handler: h.Deactivate,
				OpenAPI: &openapi.Operation{
					Summary:    "Fall back to the built-in instructions",
					Parameters: id,
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Deactivated prompt", "Prompt"),
						404: notFound,
					},
				},
			},
		},
		Schemas: schemas(),
	}
}

func schemas() map[string]*openapi.Schema {
	stageEnum := openapi.Enum(stages...)

	return map[string]*openapi.Schema{
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"name":         {Type: "string"},
				"stage":        {Type: "string", Enum: stageEnum},
				"instructions": {Type: "string"},
				"description":  {Type: "string"},
				"active":       {Type: "boolean"},
			},
		},
		"PromptCommand": {
			Type:     "object",
			Required: []string{"name", "stage", "instructions"},
			Properties: map[string]*openapi.Schema{
				"name":         {Type: "string"},
				"stage":        {Type: "string", Enum: stageEnum},
				"instructions": {Type: "string"},
				"description":  {Type: "string"},
			},
		},
		"StageContent": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"stage":   {Type: "string", Enum: stageEnum},
				"content": {Type: "string"},
			},
		},
		"PreviewRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"vars": {Type: "object"},
			},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	result, err := h.sys.List(r.Context(), page, FiltersFromQuery(r.URL.Query()))
	h.respond(w, http.StatusOK, result, err)
}

func (h *Handler) Stages(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Stages())
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	p, err := h.sys.Find(r.Context(), id)
	h.respond(w, http.StatusOK, p, err)
}

// Instructions returns the active override, or the built-in default.
func (h *Handler) Instructions(w http.ResponseWriter, r *http.Request) {
	h.stageText(w, r, h.sys.Instructions)
}

func (h *Handler) Spec(w http.ResponseWriter, r *http.Request) {
	h.stageText(w, r, h.sys.Spec)
}

// Preview composes the stage prompt exactly as a pipeline run would,
// using the caller's variables in place of live stage output.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	stage, err := ParseStage(r.PathValue("stage"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req PreviewRequest
	if r.ContentLength != 0 {
		if req, err = handlers.DecodeJSON[PreviewRequest](r); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
	}

	text, err := Compose(r.Context(), h.sys, stage, req.Vars)
	h.respond(w, http.StatusOK, StageContent{Stage: stage, Content: text}, err)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.command(w, r)
	if !ok {
		return
	}
	p, err := h.sys.Create(r.Context(), cmd)
	h.respond(w, http.StatusCreated, p, err)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	cmd, ok := h.command(w, r)
	if !ok {
		return
	}
	p, err := h.sys.Update(r.Context(), id, cmd)
	h.respond(w, http.StatusOK, p, err)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[SearchRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	h.respond(w, http.StatusOK, result, err)
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	p, err := h.sys.Activate(r.Context(), id)
	h.respond(w, http.StatusOK, p, err)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	p, err := h.sys.Deactivate(r.Context(), id)
	h.respond(w, http.StatusOK, p, err)
}

func (h *Handler) stageText(w http.ResponseWriter, r *http.Request, load func(ctx context.Context, stage Stage) (string, error)) {
	stage, err := ParseStage(r.PathValue("stage"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	text, err := load(r.Context(), stage)
	h.respond(w, http.StatusOK, StageContent{Stage: stage, Content: text}, err)
}

// pathID writes a 400 and reports false when {id} is not a UUID.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) command(w http.ResponseWriter, r *http.Request) (Command, bool) {
	cmd, err := handlers.DecodeJSON[Command](r)
	if err == nil {
		err = cmd.Validate()
	}
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return Command{}, false
	}
	return cmd, true
}

func (h *Handler) respond(w http.ResponseWriter, status int, v any, err error) {
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, status, v)
}
