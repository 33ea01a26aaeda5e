// Package queue implements the durable, database-backed task queue
// that drives each candidate through the pipeline's ordered stages,
// and the runtime that polls it and dispatches work to stage handlers.
package queue

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for queue operations.
var (
	// ErrNoItemsAvailable indicates no READY items are in the queue.
	ErrNoItemsAvailable = errors.New("queue: no items available")
)

// Stage identifies one of the five ordered pipeline stages.
type Stage string

const (
	StageTextExtract Stage = "TEXT_EXTRACT"
	StageLLMExtract  Stage = "LLM_EXTRACT"
	StageEmbed       Stage = "EMBED"
	StageScore       Stage = "SCORE"
	StageExplain     Stage = "EXPLAIN"
)

// nextStage is the fixed successor table; the zero value (empty
// string) means "no successor, candidate becomes DONE".
var nextStage = map[Stage]Stage{
	StageTextExtract: StageLLMExtract,
	StageLLMExtract:  StageEmbed,
	StageEmbed:       StageScore,
	StageScore:       StageExplain,
}

// Successor returns the stage that follows s, and whether one exists.
func Successor(s Stage) (Stage, bool) {
	next, ok := nextStage[s]
	return next, ok
}

// Item is a leased or persisted queue row, independent of the
// generated ent type so callers outside this package don't need to
// import ent directly.
type Item struct {
	ID          string
	CandidateID string
	Stage       Stage
	Attempts    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StageHandler executes one pipeline stage for one candidate.
// Implementations must be idempotent: re-running a completed stage for
// the same candidate must produce the same end state, since the
// runtime provides only at-least-once delivery.
type StageHandler interface {
	Handle(ctx context.Context, candidateID string) error
}
