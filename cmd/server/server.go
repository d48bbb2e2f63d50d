package main

import (
	"time"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/infrastructure"
)

// Server wires the API, the chat page and, when enabled, the Telegram bot
// onto one lifecycle.
type Server struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra, cfg)
	modules.Mount(router)

	infra.Logger.Info("server configured",
		"version", cfg.Version,
		"modules", router.Prefixes(),
		"bot", cfg.Bot.Enabled,
		"metrics", cfg.Metrics.Enabled,
	)

	return &Server{
		cfg:     cfg,
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start returns once the listener is bound. Database and storage checks
// continue in the background; /readyz reports when they finish.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}
	if s.cfg.Bot.Enabled {
		if err := startBot(s.infra, &s.cfg.Bot, s.modules.Domain); err != nil {
			return err
		}
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("ready", "addr", s.http.Addr())
	}()
	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("shutting down", "workers", s.infra.Lifecycle.Running())
	return s.infra.Lifecycle.Shutdown(timeout)
}
