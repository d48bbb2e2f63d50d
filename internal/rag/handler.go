package rag

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/handlers"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/routes"
)

// Answerer replies to a chat question.
type Answerer interface {
	Answer(ctx context.Context, question string) (Answer, error)
}

// Handler serves the chat endpoint.
type Handler struct {
	chat   Answerer
	logger *slog.Logger
}

// ChatRequest is the chat endpoint body.
type ChatRequest struct {
	Question string `json:"question"`
}

func NewHandler(chat Answerer, logger *slog.Logger) *Handler {
	return &Handler{chat: chat, logger: logger.With("handler", "chat")}
}

// Routes returns the route group definition for the chat endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/chat",
		Tags:   []string{"Chat"},
		Routes: []routes.Route{
			{
				Method:  "POST",
				Pattern: "",
				Handler: h.Ask,
				OpenAPI: &openapi.Operation{
					Summary:     "Ask the knowledge base",
					RequestBody: openapi.RequestBodyJSON("ChatRequest", true),
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Answer", "ChatAnswer"),
						400: openapi.ResponseRef("BadRequest"),
						500: openapi.ResponseRef("InternalError"),
					},
				},
			},
		},
		Schemas: map[string]*openapi.Schema{
			"ChatRequest": {
				Type:       "object",
				Properties: map[string]*openapi.Schema{"question": {Type: "string"}},
				Required:   []string{"question"},
			},
			"ChatAnswer": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"answer":       {Type: "string"},
					"awaiting_url": {Type: "boolean"},
					"sources":      {Type: "array", Items: &openapi.Schema{Type: "string"}},
				},
			},
		},
	}
}

// Ask answers one question.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[ChatRequest](r)
	if err != nil || strings.TrimSpace(req.Question) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyQuestion)
		return
	}

	answer, err := h.chat.Answer(r.Context(), req.Question)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, answer)
}
