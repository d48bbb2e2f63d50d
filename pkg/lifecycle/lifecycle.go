// Package lifecycle coordinates startup, background work, and graceful shutdown.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator owns the process context. Startup hooks gate readiness,
// shutdown hooks and background workers gate Shutdown.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc

	startup  sync.WaitGroup
	shutdown sync.WaitGroup
	workers  sync.WaitGroup

	running atomic.Int64
	ready   atomic.Bool
}

func New() *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{ctx: ctx, cancel: cancel}
}

// Context is cancelled when Shutdown begins.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup runs fn concurrently. Ready stays false until every startup
// hook has returned and WaitForStartup has been called.
func (c *Coordinator) OnStartup(fn func()) {
	c.startup.Go(fn)
}

// OnShutdown runs fn concurrently right away. Hooks are expected to block
// on <-Context().Done() before releasing their resources.
func (c *Coordinator) OnShutdown(fn func()) {
	c.shutdown.Go(fn)
}

// Go runs a background worker, such as a pipeline launched from a chat,
// with the coordinator's context. Shutdown waits for it.
func (c *Coordinator) Go(fn func(ctx context.Context)) {
	c.running.Add(1)
	c.workers.Go(func() {
		defer c.running.Add(-1)
		fn(c.ctx)
	})
}

// Running reports the number of workers started with Go that have not returned.
func (c *Coordinator) Running() int {
	return int(c.running.Load())
}

func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// WaitForStartup blocks until all startup hooks have returned, then marks
// the coordinator ready.
func (c *Coordinator) WaitForStartup() {
	c.startup.Wait()
	c.ready.Store(true)
}

// Shutdown cancels the context and waits up to timeout for shutdown hooks
// and workers. Calling it more than once is safe.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdown.Wait()
		c.workers.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-timer.C:
		return fmt.Errorf("shutdown timeout after %v: %d workers still running", timeout, c.Running())
	}
}
