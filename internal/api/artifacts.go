package api

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/handlers"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/routes"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/storage"
)

// artifactsHandler serves generated reports and query dumps by storage key.
type artifactsHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newArtifactsHandler(store storage.System, logger *slog.Logger) *artifactsHandler {
	return &artifactsHandler{
		store:  store,
		logger: logger.With("handler", "artifacts"),
	}
}

func (h *artifactsHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/artifacts",
		Tags:   []string{"Artifacts"},
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "/{key...}",
				Handler: h.download,
				OpenAPI: &openapi.Operation{
					Summary: "Download a generated PDF or JSON artifact",
					Parameters: []*openapi.Parameter{{
						Name:     "key",
						In:       "path",
						Required: true,
						Schema:   &openapi.Schema{Type: "string"},
					}},
					Responses: map[int]*openapi.Response{
						200: {Description: "Artifact content"},
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
		},
	}
}

func (h *artifactsHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}
