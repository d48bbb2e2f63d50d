package lifecycle_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/lifecycle"
)

func TestReadiness(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	var migrated atomic.Bool
	lc.OnStartup(func() {
		<-release
		migrated.Store(true)
	})

	if lc.Ready() {
		t.Fatal("ready before startup hooks ran")
	}

	close(release)
	lc.WaitForStartup()

	if !migrated.Load() || !lc.Ready() {
		t.Fatal("expected ready once startup hooks returned")
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if lc.Ready() {
		t.Error("still ready after shutdown")
	}
}

func TestShutdownRunsHooksAfterCancel(t *testing.T) {
	lc := lifecycle.New()
	lc.WaitForStartup()

	var closed atomic.Int32
	for range 2 {
		lc.OnShutdown(func() {
			<-lc.Context().Done()
			closed.Add(1)
		})
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if got := closed.Load(); got != 2 {
		t.Errorf("hooks run: got %d, want 2", got)
	}
	if lc.Context().Err() == nil {
		t.Error("context not cancelled")
	}
}

func TestShutdownIsRepeatable(t *testing.T) {
	lc := lifecycle.New()
	lc.WaitForStartup()

	for i := range 2 {
		if err := lc.Shutdown(time.Second); err != nil {
			t.Fatalf("shutdown %d: %v", i, err)
		}
	}
}

func TestWorkers(t *testing.T) {
	lc := lifecycle.New()
	lc.WaitForStartup()

	started := make(chan struct{})
	var finished atomic.Bool
	lc.Go(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		finished.Store(true)
	})

	<-started
	if got := lc.Running(); got != 1 {
		t.Errorf("running: got %d, want 1", got)
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !finished.Load() {
		t.Error("worker still running after shutdown returned")
	}
	if got := lc.Running(); got != 0 {
		t.Errorf("running after shutdown: got %d, want 0", got)
	}
}

func TestShutdownTimeout(t *testing.T) {
	tests := []struct {
		name  string
		setup func(lc *lifecycle.Coordinator)
		want  string
	}{
		{
			name: "slow hook",
			setup: func(lc *lifecycle.Coordinator) {
				lc.OnShutdown(func() {
					<-lc.Context().Done()
					time.Sleep(300 * time.Millisecond)
				})
			},
			want: "0 workers",
		},
		{
			name: "stuck worker",
			setup: func(lc *lifecycle.Coordinator) {
				lc.Go(func(context.Context) {
					time.Sleep(300 * time.Millisecond)
				})
			},
			want: "1 workers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := lifecycle.New()
			lc.WaitForStartup()
			tt.setup(lc)

			err := lc.Shutdown(30 * time.Millisecond)
			if err == nil {
				t.Fatal("expected timeout error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
