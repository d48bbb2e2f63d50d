package main

import (
	"net/http"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/api"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/infrastructure"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/handlers"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/middleware"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/module"
	"github.com/tonaja/FastAutomate-Cloud-Bot/web/chat"
)

type Modules struct {
	API    *module.Module
	Chat   *module.Module
	Domain *api.Domain
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, domain, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	chatModule, err := chat.NewModule("/chat", cfg.API.BasePath)
	if err != nil {
		return nil, err
	}
	chatModule.Use(middleware.Logger(infra.Scoped("chat").Logger))

	return &Modules{
		API:    apiModule,
		Chat:   chatModule,
		Domain: domain,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Chat)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})

	if infra.Metrics != nil {
		router.Handle("GET "+cfg.Metrics.Path, infra.Metrics.Handler())
	}

	return router
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	handlers.RespondJSON(w, code, map[string]string{"status": status})
}
