package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ryo-aien/recruiting-screening-assistant/ent"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/candidate"
	"github.com/ryo-aien/recruiting-screening-assistant/internal/config"
)

// RuntimeStatus mirrors a worker's point-in-time activity.
type RuntimeStatus string

const (
	RuntimeStatusIdle    RuntimeStatus = "idle"
	RuntimeStatusWorking RuntimeStatus = "working"
)

// Health is a snapshot of one runtime's state, exposed for readiness
// and health-check endpoints.
type Health struct {
	ID              string
	Status          RuntimeStatus
	CurrentStage    Stage
	CurrentItemID   string
	ItemsProcessed  int
	LastActivity    time.Time
}

// Runtime polls the queue and dispatches leased items to the
// registered StageHandler, advancing each candidate through the
// pipeline's stage sequence.
type Runtime struct {
	id      string
	client  *ent.Client
	driver  *Driver
	cfg     config.PipelineConfig
	handlers map[Stage]StageHandler

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu             sync.RWMutex
	status         RuntimeStatus
	currentStage   Stage
	currentItemID  string
	itemsProcessed int
	lastActivity   time.Time
}

// NewRuntime builds a Runtime that dispatches to the given per-stage handlers.
func NewRuntime(id string, client *ent.Client, driver *Driver, handlers map[Stage]StageHandler, cfg config.PipelineConfig) *Runtime {
	return &Runtime{
		id:           id,
		client:       client,
		driver:       driver,
		cfg:          cfg,
		handlers:     handlers,
		stopCh:       make(chan struct{}),
		status:       RuntimeStatusIdle,
		lastActivity: time.Now(),
	}
}

// Start begins the poll loop in a goroutine.
func (r *Runtime) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.run(ctx)
}

// Stop signals the runtime to stop after its current item and waits.
func (r *Runtime) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

// Health returns the current runtime health snapshot.
func (r *Runtime) Health() Health {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Health{
		ID:             r.id,
		Status:         r.status,
		CurrentStage:   r.currentStage,
		CurrentItemID:  r.currentItemID,
		ItemsProcessed: r.itemsProcessed,
		LastActivity:   r.lastActivity,
	}
}

func (r *Runtime) run(ctx context.Context) {
	defer r.wg.Done()

	log := slog.With("runtime_id", r.id)
	log.Info("queue runtime started")

	for {
		select {
		case <-r.stopCh:
			log.Info("queue runtime shutting down")
			return
		case <-ctx.Done():
			log.Info("context cancelled, queue runtime shutting down")
			return
		default:
			if err := r.pollAndProcess(ctx); err != nil {
				if errors.Is(err, ErrNoItemsAvailable) {
					r.sleep(r.pollInterval())
					continue
				}
				log.Error("error processing queue item", "error", err)
				r.sleep(time.Second)
			}
		}
	}
}

func (r *Runtime) sleep(d time.Duration) {
	select {
	case <-r.stopCh:
	case <-time.After(d):
	}
}

// pollAndProcess leases the next item and runs it to completion. On
// success it advances the candidate to the next stage. On failure the
// item is left FAILED (it is not retried here); once the item's
// attempts reach MaxRetries the candidate is also marked ERROR.
func (r *Runtime) pollAndProcess(ctx context.Context) error {
	item, err := r.driver.LeaseNext(ctx)
	if err != nil {
		return err
	}

	log := slog.With("queue_id", item.ID, "candidate_id", item.CandidateID, "stage", item.Stage, "runtime_id", r.id)
	log.Info("item claimed")

	r.setStatus(RuntimeStatusWorking, item.Stage, item.ID)
	defer r.setStatus(RuntimeStatusIdle, "", "")

	if err := r.markProcessingIfNew(ctx, item.CandidateID); err != nil {
		return fmt.Errorf("queue: mark candidate %s processing: %w", item.CandidateID, err)
	}

	handler, ok := r.handlers[item.Stage]
	if !ok {
		return fmt.Errorf("queue: no handler registered for stage %s", item.Stage)
	}

	stageCtx, cancel := context.WithTimeout(ctx, r.cfg.StageTimeout)
	handleErr := handler.Handle(stageCtx, item.CandidateID)
	cancel()

	bg := context.Background()

	if handleErr != nil {
		log.Warn("stage handler failed", "error", handleErr, "attempts", item.Attempts)
		if err := r.driver.Fail(bg, item.ID, handleErr); err != nil {
			return fmt.Errorf("queue: record failure for %s: %w", item.ID, err)
		}

		if item.Attempts >= r.cfg.MaxRetries {
			if err := r.failCandidate(bg, item.CandidateID, handleErr); err != nil {
				return fmt.Errorf("queue: fail candidate %s: %w", item.CandidateID, err)
			}
		}

		r.mu.Lock()
		r.itemsProcessed++
		r.mu.Unlock()
		return nil
	}

	if err := r.driver.Complete(bg, item.ID); err != nil {
		return fmt.Errorf("queue: complete %s: %w", item.ID, err)
	}

	if err := r.advance(bg, item); err != nil {
		return fmt.Errorf("queue: advance %s: %w", item.ID, err)
	}

	r.mu.Lock()
	r.itemsProcessed++
	r.mu.Unlock()

	log.Info("item complete")
	return nil
}

// markProcessingIfNew flips a candidate from NEW to PROCESSING the
// moment its first stage leases work. The Where clause makes this a
// no-op once the candidate has already left NEW, so it is safe to call
// on every leased item regardless of which stage it belongs to.
func (r *Runtime) markProcessingIfNew(ctx context.Context, candidateID string) error {
	_, err := r.client.Candidate.Update().
		Where(candidate.IDEQ(candidateID), candidate.StatusEQ(candidate.StatusNEW)).
		SetStatus(candidate.StatusPROCESSING).
		Save(ctx)
	return err
}

// advance enqueues the next stage's item, or marks the candidate DONE
// if the completed item was the pipeline's last stage.
func (r *Runtime) advance(ctx context.Context, item *Item) error {
	next, ok := Successor(item.Stage)
	if !ok {
		return r.client.Candidate.UpdateOneID(item.CandidateID).
			SetStatus(candidate.StatusDONE).
			Exec(ctx)
	}

	return r.driver.Enqueue(ctx, uuid.NewString(), item.CandidateID, next)
}

// failCandidate marks a candidate ERROR once its current stage has
// exhausted its retry budget.
func (r *Runtime) failCandidate(ctx context.Context, candidateID string, cause error) error {
	msg := cause.Error()
	if len(msg) > maxLastErrorLen {
		msg = msg[:maxLastErrorLen]
	}
	return r.client.Candidate.UpdateOneID(candidateID).
		SetStatus(candidate.StatusERROR).
		SetErrorMessage(msg).
		Exec(ctx)
}

// pollInterval returns the poll duration with jitter applied.
func (r *Runtime) pollInterval() time.Duration {
	base := r.cfg.PollInterval
	jitter := r.cfg.PollIntervalJitter
	if jitter <= 0 {
		return base
	}
	offset := time.Duration(rand.Int64N(int64(2 * jitter)))
	return base - jitter + offset
}

func (r *Runtime) setStatus(status RuntimeStatus, stage Stage, itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
	r.currentStage = stage
	r.currentItemID = itemID
	r.lastActivity = time.Now()
}
