package queue

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"

	"github.com/ryo-aien/recruiting-screening-assistant/ent"
	"github.com/ryo-aien/recruiting-screening-assistant/ent/queueitem"
)

const maxLastErrorLen = 1000

// Driver is the durable queue backed by the queue_items table. All
// operations are safe to call from any number of concurrent worker
// goroutines or processes.
type Driver struct {
	client *ent.Client
}

// NewDriver wraps an ent client as a Driver.
func NewDriver(client *ent.Client) *Driver {
	return &Driver{client: client}
}

// Enqueue inserts a new READY item for the given candidate and stage.
func (d *Driver) Enqueue(ctx context.Context, id, candidateID string, stage Stage) error {
	return d.client.QueueItem.Create().
		SetID(id).
		SetCandidateID(candidateID).
		SetStage(queueitem.Stage(stage)).
		SetStatus(queueitem.StatusREADY).
		Exec(ctx)
}

// LeaseNext atomically claims the oldest READY item, marking it RUNNING
// and incrementing its attempt counter, using SELECT ... FOR UPDATE
// SKIP LOCKED so concurrent lessees never double-claim the same row.
func (d *Driver) LeaseNext(ctx context.Context) (*Item, error) {
	tx, err := d.client.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("queue: begin lease tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row, err := tx.QueueItem.Query().
		Where(queueitem.StatusEQ(queueitem.StatusREADY)).
		Order(ent.Asc(queueitem.FieldCreatedAt)).
		Limit(1).
		ForUpdate(sql.WithLockAction(sql.SkipLocked)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNoItemsAvailable
		}
		return nil, fmt.Errorf("queue: query next ready item: %w", err)
	}

	row, err = row.Update().
		SetStatus(queueitem.StatusRUNNING).
		SetAttempts(row.Attempts + 1).
		Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("queue: claim item %s: %w", row.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("queue: commit lease: %w", err)
	}

	return toItem(row), nil
}

// Complete marks a leased item DONE.
func (d *Driver) Complete(ctx context.Context, id string) error {
	return d.client.QueueItem.UpdateOneID(id).
		SetStatus(queueitem.StatusDONE).
		Exec(ctx)
}

// Fail marks a leased item FAILED and records the truncated error. The
// item stays FAILED until Retry is called for it; the runtime
// separately marks the candidate ERROR once attempts are exhausted.
func (d *Driver) Fail(ctx context.Context, id string, cause error) error {
	msg := cause.Error()
	if len(msg) > maxLastErrorLen {
		msg = msg[:maxLastErrorLen]
	}
	return d.client.QueueItem.UpdateOneID(id).
		SetStatus(queueitem.StatusFAILED).
		SetLastError(msg).
		Exec(ctx)
}

// Retry resets a FAILED item back to READY so a future lease can retry it.
func (d *Driver) Retry(ctx context.Context, id string) error {
	return d.client.QueueItem.UpdateOneID(id).
		SetStatus(queueitem.StatusREADY).
		Exec(ctx)
}

// ResetStuck resets every RUNNING item whose updated_at is older than
// threshold back to READY, returning the number reset. Used by the
// reconciler to recover from workers that died mid-stage without
// marking the item FAILED.
func (d *Driver) ResetStuck(ctx context.Context, threshold time.Duration) (int, error) {
	cutoff := time.Now().Add(-threshold)
	n, err := d.client.QueueItem.Update().
		Where(
			queueitem.StatusEQ(queueitem.StatusRUNNING),
			queueitem.UpdatedAtLT(cutoff),
		).
		SetStatus(queueitem.StatusREADY).
		Save(ctx)
	if err != nil {
		return 0, fmt.Errorf("queue: reset stuck items: %w", err)
	}
	return n, nil
}

// Depth returns the number of READY items across all stages.
func (d *Driver) Depth(ctx context.Context) (int, error) {
	n, err := d.client.QueueItem.Query().
		Where(queueitem.StatusEQ(queueitem.StatusREADY)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("queue: count ready items: %w", err)
	}
	return n, nil
}

func toItem(row *ent.QueueItem) *Item {
	return &Item{
		ID:          row.ID,
		CandidateID: row.CandidateID,
		Stage:       Stage(row.Stage),
		Attempts:    row.Attempts,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
