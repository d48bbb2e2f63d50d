// Package database owns the postgres pool shared by the prompt catalog,
// run history and the pgvector knowledge base.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/lifecycle"
)

// pingInterval spaces connection attempts while postgres is still coming up.
const pingInterval = time.Second

type System interface {
	Connection() *sql.DB
	// Start registers the connect and close hooks.
	Start(lc *lifecycle.Coordinator) error
	Ready() bool
	// Check returns ErrNotReady until a ping has succeeded.
	Check() error
}

type database struct {
	conn    *sql.DB
	logger  *slog.Logger
	timeout time.Duration
	ready   atomic.Bool
}

// New configures the pool without connecting. sql.Open only fails on a
// malformed connection string.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:    db,
		logger:  logger.With("system", "database"),
		timeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

// Start keeps pinging until postgres answers or the connect timeout
// passes. A database that never answers leaves the service running but
// unready, and the pipelines fall back to built-in prompts.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.timeout)
		defer cancel()

		attempts, err := d.connect(ctx)
		if err != nil {
			d.logger.Error("database unreachable", "attempts", attempts, "error", err)
			return
		}
		d.ready.Store(true)
		d.logger.Info("database connected", "attempts", attempts)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.ready.Store(false)
		if err := d.conn.Close(); err != nil {
			d.logger.Error("closing database", "error", err)
			return
		}
		d.logger.Info("database closed")
	})

	return nil
}

func (d *database) connect(ctx context.Context) (int, error) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		err := d.conn.PingContext(ctx)
		if err == nil {
			return attempt, nil
		}
		d.logger.Debug("database ping failed", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return attempt, err
		case <-ticker.C:
		}
	}
}

func (d *database) Ready() bool {
	return d.ready.Load()
}

func (d *database) Check() error {
	if !d.Ready() {
		return ErrNotReady
	}
	return nil
}
