package database_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/database"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/lifecycle"
)

func localConfig() *database.Config {
	cfg := &database.Config{Name: "primeleads", User: "leads", MaxOpenConns: 12, MaxIdleConns: 3}
	if err := cfg.Finalize(nil); err != nil {
		panic(err)
	}
	return cfg
}

func TestNewConfiguresPoolWithoutConnecting(t *testing.T) {
	sys, err := database.New(localConfig(), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	defer sys.Connection().Close()

	if got := sys.Connection().Stats().MaxOpenConnections; got != 12 {
		t.Errorf("max open: got %d, want 12", got)
	}
	if sys.Ready() {
		t.Error("ready before Start")
	}
	if err := sys.Check(); !errors.Is(err, database.ErrNotReady) {
		t.Errorf("Check: got %v, want ErrNotReady", err)
	}
}

func TestStartGivesUpOnUnreachableDatabase(t *testing.T) {
	cfg := localConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1
	cfg.ConnTimeout = "1500ms"

	sys, err := database.New(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	lc.WaitForStartup()
	elapsed := time.Since(start)

	if sys.Ready() {
		t.Error("ready despite no database")
	}
	if elapsed > 5*time.Second {
		t.Errorf("startup took %v, want it bounded by conn_timeout", elapsed)
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}
