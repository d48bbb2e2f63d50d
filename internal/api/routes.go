package api

import (
	"fmt"
	"net/http"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/candidates"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/leads"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/rag"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Prompts.Handler().Routes(),
		domain.Runs.Handler().Routes(),
		leads.NewHandler(domain.Workflow, domain.Runs, runtime.Logger).Routes(),
		candidates.NewHandler(domain.Recruiting, domain.Runs, runtime.Logger).Routes(),
		rag.NewHandler(domain.Chat, runtime.Logger).Routes(),
		newArtifactsHandler(runtime.Storage, runtime.Logger).routes(),
	}

	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups...)
	if err != nil {
		return fmt.Errorf("build openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}

func buildSpec(cfg *config.Config, groups ...routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Info(cfg.Version), cfg.API.BasePath)

	routes.Describe(spec, "", groups...)

	return openapi.MarshalJSON(spec)
}
