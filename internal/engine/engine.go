// Package engine owns the live boards. Each session is pinned to one shard
// goroutine, so all events for a board are applied serially while different
// sessions proceed in parallel.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/wirelab/internal/action"
	"github.com/gyaneshwarpardhi/wirelab/internal/board"
	"github.com/gyaneshwarpardhi/wirelab/internal/config"
	"github.com/gyaneshwarpardhi/wirelab/internal/event"
	"github.com/gyaneshwarpardhi/wirelab/internal/level"
	"github.com/gyaneshwarpardhi/wirelab/internal/metrics"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrLevelNotFound   = errors.New("level not found")
	ErrTooManySessions = errors.New("session limit reached")
	ErrQueueFull       = errors.New("event queue full")
	ErrTimeout         = errors.New("event processing timeout")
)

// EventResult is the outcome of processing a single event.
type EventResult struct {
	EventID        string               `json:"event_id"`
	SessionID      string               `json:"session_id"`
	Type           event.Type           `json:"type"`
	DurationMicros int64                `json:"duration_us"`
	Action         *action.ActionResult `json:"action,omitempty"`
	View           *board.View          `json:"view"`
	Error          string               `json:"error,omitempty"`
}

type session struct {
	id      string
	created time.Time

	// board is only touched by the owning shard after creation.
	board    *board.Board
	view     atomic.Pointer[board.View]
	lastSeen atomic.Int64
}

func (s *session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

// SessionInfo describes an open session.
type SessionInfo struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	View      *board.View `json:"view"`
}

type eventWork struct {
	sess    *session
	ev      *event.Event
	resultC chan *EventResult
}

// Engine routes events to per-session boards.
type Engine struct {
	catalog  atomic.Pointer[level.Catalog]
	registry *action.Registry
	pool     *shardedPool[*eventWork]
	conf     config.EngineConf
	hub      *hub

	mu       sync.RWMutex
	sessions map[string]*session

	now    func() time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an Engine using conf, starts the shards and the idle sweeper.
func New(ctx context.Context, cat *level.Catalog, reg *action.Registry, conf config.EngineConf) *Engine {
	ctx, cancel := context.WithCancel(ctx)
	e := &Engine{
		registry: reg,
		conf:     conf,
		hub:      newHub(),
		sessions: make(map[string]*session),
		now:      time.Now,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	e.catalog.Store(cat)
	e.pool = newShardedPool(ctx, conf.Shards, conf.QueueDepth, e.processEvent)
	go e.sweepLoop(ctx)
	return e
}

// SwapCatalog atomically replaces the level catalog (used on hot-reload).
// Open boards keep the level they were loaded with.
func (e *Engine) SwapCatalog(c *level.Catalog) {
	e.catalog.Store(c)
}

// ApplyConfig validates cfg, compiles its levels and swaps them in. The
// running catalog is left untouched on error.
func (e *Engine) ApplyConfig(cfg *config.LabConfig) (*level.Catalog, error) {
	if err := config.Validate(cfg); err != nil {
		metrics.CatalogReloads.WithLabelValues("invalid").Inc()
		return nil, err
	}
	cat, err := level.Build(cfg)
	if err != nil {
		metrics.CatalogReloads.WithLabelValues("invalid").Inc()
		return nil, err
	}
	e.SwapCatalog(cat)
	metrics.CatalogReloads.WithLabelValues("ok").Inc()
	return cat, nil
}

// Catalog returns the current level catalog.
func (e *Engine) Catalog() *level.Catalog {
	return e.catalog.Load()
}

// CreateSession opens a board on levelID, or on the first level when empty.
func (e *Engine) CreateSession(levelID string) (*SessionInfo, error) {
	cat := e.catalog.Load()
	var lv *level.Level
	if levelID == "" {
		lv = cat.Default()
	} else {
		var ok bool
		if lv, ok = cat.Get(levelID); !ok {
			return nil, fmt.Errorf("level %s: %w", levelID, ErrLevelNotFound)
		}
	}

	now := e.now()
	s := &session{id: uuid.New().String(), created: now, board: board.New(lv)}
	s.touch(now)
	v := s.board.View()
	s.view.Store(v)

	e.mu.Lock()
	if e.conf.MaxSessions > 0 && len(e.sessions) >= e.conf.MaxSessions {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w (max %d)", ErrTooManySessions, e.conf.MaxSessions)
	}
	e.sessions[s.id] = s
	n := len(e.sessions)
	e.mu.Unlock()

	metrics.SessionsActive.Set(float64(n))
	return &SessionInfo{ID: s.id, CreatedAt: s.created, View: v}, nil
}

func (e *Engine) lookup(id string) (*session, error) {
	e.mu.RLock()
	s, ok := e.sessions[id]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return s, nil
}

// Session returns the latest snapshot of a session's board.
func (e *Engine) Session(id string) (*SessionInfo, error) {
	s, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	s.touch(e.now())
	return &SessionInfo{ID: s.id, CreatedAt: s.created, View: s.view.Load()}, nil
}

// DeleteSession closes a session and its subscriptions.
func (e *Engine) DeleteSession(id string) error {
	e.mu.Lock()
	_, ok := e.sessions[id]
	delete(e.sessions, id)
	n := len(e.sessions)
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	e.hub.close(id)
	metrics.SessionsActive.Set(float64(n))
	return nil
}

// SessionCount returns the number of open sessions.
func (e *Engine) SessionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}

// Subscribe returns a channel receiving every result applied to the session.
// Slow readers miss results rather than stall the shard. The channel is
// closed by cancel or when the session ends.
func (e *Engine) Subscribe(sessionID string) (<-chan *EventResult, func(), error) {
	if _, err := e.lookup(sessionID); err != nil {
		return nil, nil, err
	}
	ch, cancel := e.hub.subscribe(sessionID)
	return ch, cancel, nil
}

// ProcessSync applies an event to its session's board and waits for the result.
func (e *Engine) ProcessSync(ctx context.Context, ev *event.Event) (*EventResult, error) {
	if err := e.registry.Validate(ev); err != nil {
		return nil, err
	}
	s, err := e.lookup(ev.SessionID)
	if err != nil {
		return nil, err
	}
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.ReceivedAt.IsZero() {
		ev.ReceivedAt = e.now()
	}
	s.touch(ev.ReceivedAt)

	resultC := make(chan *EventResult, 1)
	w := &eventWork{sess: s, ev: ev, resultC: resultC}

	timeout := time.Duration(e.conf.EventTimeoutMs) * time.Millisecond
	if !e.pool.Submit(s.id, w) {
		metrics.EventsDropped.Inc()
		return nil, fmt.Errorf("%w (capacity %d)", ErrQueueFull, e.pool.QueueCap())
	}
	metrics.EventsEnqueued.Inc()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case res := <-resultC:
		return res, nil
	case <-timer.C:
		return nil, fmt.Errorf("%w after %v", ErrTimeout, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// QueueUtilization returns queue used / capacity (0–1).
func (e *Engine) QueueUtilization() float64 {
	if e.pool.QueueCap() == 0 {
		return 0
	}
	return float64(e.pool.QueueLen()) / float64(e.pool.QueueCap())
}

func (e *Engine) processEvent(ctx context.Context, w *eventWork) {
	start := time.Now()
	ev, s := w.ev, w.sess

	result := &EventResult{EventID: ev.ID, SessionID: s.id, Type: ev.Type}
	status := "success"

	exec, err := e.registry.Get(ev.Type)
	if err == nil {
		result.Action, err = exec.Execute(ctx, ev, action.Env{Board: s.board, Catalog: e.catalog.Load()})
	}
	if err != nil {
		status = "error"
		result.Error = err.Error()
	}

	v := s.board.View()
	s.view.Store(v)
	result.View = v
	result.DurationMicros = time.Since(start).Microseconds()

	metrics.EventsProcessed.WithLabelValues(string(ev.Type), status).Inc()
	metrics.EventProcessingDuration.Observe(float64(result.DurationMicros))
	metrics.Evaluations.WithLabelValues(string(v.Status.Severity)).Inc()
	if v.Status.IsShortCircuit {
		metrics.ShortCircuits.WithLabelValues(v.LevelID).Inc()
	}
	if v.Status.Cue == board.CueSuccess {
		metrics.LevelsCompleted.WithLabelValues(v.LevelID).Inc()
	}

	e.hub.publish(s.id, result)
	w.resultC <- result
}

func (e *Engine) sweepInterval() time.Duration {
	ttl := time.Duration(e.conf.SessionTTLSeconds) * time.Second
	iv := ttl / 4
	switch {
	case iv < time.Second:
		iv = time.Second
	case iv > time.Minute:
		iv = time.Minute
	}
	return iv
}

func (e *Engine) sweepLoop(ctx context.Context) {
	defer close(e.done)
	if e.conf.SessionTTLSeconds <= 0 {
		<-ctx.Done()
		return
	}
	t := time.NewTicker(e.sweepInterval())
	defer t.Stop()
	for {
		select {
		case <-t.C:
			e.Sweep(e.now())
		case <-ctx.Done():
			return
		}
	}
}

// Sweep closes sessions idle for longer than the configured TTL and
// returns how many were removed.
func (e *Engine) Sweep(now time.Time) int {
	if e.conf.SessionTTLSeconds <= 0 {
		return 0
	}
	cutoff := now.Add(-time.Duration(e.conf.SessionTTLSeconds) * time.Second).UnixNano()

	e.mu.Lock()
	var expired []string
	for id, s := range e.sessions {
		if s.lastSeen.Load() < cutoff {
			expired = append(expired, id)
			delete(e.sessions, id)
		}
	}
	n := len(e.sessions)
	e.mu.Unlock()

	for _, id := range expired {
		e.hub.close(id)
	}
	if len(expired) > 0 {
		metrics.SessionsExpired.Add(float64(len(expired)))
		metrics.SessionsActive.Set(float64(n))
	}
	return len(expired)
}

// Shutdown drains the shards, then stops the sweeper.
func (e *Engine) Shutdown() {
	e.pool.Drain()
	e.cancel()
	<-e.done
}

