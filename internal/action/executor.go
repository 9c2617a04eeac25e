package action

import (
	"context"
	"errors"

	"github.com/gyaneshwarpardhi/wirelab/internal/board"
	"github.com/gyaneshwarpardhi/wirelab/internal/event"
	"github.com/gyaneshwarpardhi/wirelab/internal/level"
)

var (
	// ErrInvalidEvent marks events rejected before they reach a board.
	ErrInvalidEvent = errors.New("invalid event")
	ErrUnknownLevel = errors.New("unknown level")
)

// ActionResult holds the outcome of applying a single event to a board.
type ActionResult struct {
	EventID string      `json:"event_id"`
	Type    event.Type  `json:"type"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Wire    *board.Wire `json:"wire,omitempty"`
}

// Env is what an executor may touch while running.
type Env struct {
	Board   *board.Board
	Catalog *level.Catalog
}

// Executor is the interface all interaction handlers must satisfy.
type Executor interface {
	// Type returns the event type this executor is registered under.
	Type() event.Type
	// Validate checks the event fields before it is queued.
	Validate(ev *event.Event) error
	// Execute applies the event to env.Board.
	Execute(ctx context.Context, ev *event.Event, env Env) (*ActionResult, error)
}
