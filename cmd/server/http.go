package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/lifecycle"
)

const readHeaderTimeout = 10 * time.Second

type httpServer struct {
	srv     *http.Server
	logger  *slog.Logger
	drain   time.Duration
	addr    string
	started chan struct{}
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *httpServer {
	return &httpServer{
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeoutDuration(),
			WriteTimeout:      cfg.WriteTimeoutDuration(),
		},
		logger:  logger.With("system", "http"),
		drain:   cfg.ShutdownTimeoutDuration(),
		addr:    cfg.Addr(),
		started: make(chan struct{}),
	}
}

// Start binds the listen address before returning so a port conflict fails
// startup instead of surfacing later in a background goroutine. Request
// contexts derive from the lifecycle context, which cancels in-flight model
// calls once shutdown begins.
func (s *httpServer) Start(lc *lifecycle.Coordinator) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.addr = ln.Addr().String()
	s.srv.BaseContext = func(net.Listener) context.Context { return lc.Context() }

	go func() {
		s.logger.Info("server listening", "addr", s.addr)
		close(s.started)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.drain)
		defer cancel()

		if err := s.srv.Shutdown(ctx); err != nil {
			s.logger.Error("draining connections", "error", err)
			return
		}
		s.logger.Info("server stopped")
	})

	return nil
}

// Addr reports the bound address, which differs from the configured one
// when port 0 was requested.
func (s *httpServer) Addr() string {
	<-s.started
	return s.addr
}
