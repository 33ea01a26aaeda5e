package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ryo-aien/recruiting-screening-assistant/ent"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/config"
)

// PoolHealth reports the aggregate state of a worker pool for a
// readiness probe.
type PoolHealth struct {
	IsHealthy     bool
	DBReachable   bool
	DBError       string
	QueueDepth    int
	TotalWorkers  int
	ActiveWorkers int
	WorkerStats   []Health
}

// Pool manages a fixed-size set of queue runtimes, all polling the
// same durable queue independently.
type Pool struct {
	driver   *Driver
	client   *ent.Client
	cfg      config.PipelineConfig
	handlers map[Stage]StageHandler

	runtimes []*Runtime
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  bool
	mu       sync.Mutex
}

// NewPool builds a Pool of cfg.WorkerCount runtimes.
func NewPool(client *ent.Client, driver *Driver, handlers map[Stage]StageHandler, cfg config.PipelineConfig) *Pool {
	return &Pool{
		driver:   driver,
		client:   client,
		cfg:      cfg,
		handlers: handlers,
		runtimes: make([]*Runtime, 0, cfg.WorkerCount),
		stopCh:   make(chan struct{}),
	}
}

// Start spawns the worker runtimes and the orphan reconciler. Safe to
// call only once; subsequent calls are no-ops.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		slog.Warn("queue pool already started, ignoring duplicate Start call")
		return nil
	}
	p.started = true

	slog.Info("starting queue pool", "worker_count", p.cfg.WorkerCount)

	for i := 0; i < p.cfg.WorkerCount; i++ {
		id := fmt.Sprintf("worker-%d", i)
		rt := NewRuntime(id, p.client, p.driver, p.handlers, p.cfg)
		p.runtimes = append(p.runtimes, rt)
		rt.Start(ctx)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		runReconciler(ctx, p.stopCh, p.driver, p.cfg.OrphanSweepInterval, p.cfg.OrphanThreshold)
	}()

	slog.Info("queue pool started")
	return nil
}

// Stop signals every runtime and the reconciler to stop, and waits for
// in-flight items to finish.
func (p *Pool) Stop() {
	slog.Info("stopping queue pool")

	for _, rt := range p.runtimes {
		rt.Stop()
	}

	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()

	slog.Info("queue pool stopped")
}

// Health returns an aggregate readiness snapshot of the pool.
func (p *Pool) Health(ctx context.Context) *PoolHealth {
	depth, err := p.driver.Depth(ctx)
	dbHealthy := err == nil
	var dbErr string
	if err != nil {
		dbErr = err.Error()
		slog.Error("failed to query queue depth for health check", "error", err)
	}

	stats := make([]Health, len(p.runtimes))
	active := 0
	for i, rt := range p.runtimes {
		h := rt.Health()
		stats[i] = h
		if h.Status == RuntimeStatusWorking {
			active++
		}
	}

	return &PoolHealth{
		IsHealthy:     dbHealthy && len(p.runtimes) > 0,
		DBReachable:   dbHealthy,
		DBError:       dbErr,
		QueueDepth:    depth,
		TotalWorkers:  len(p.runtimes),
		ActiveWorkers: active,
		WorkerStats:   stats,
	}
}
