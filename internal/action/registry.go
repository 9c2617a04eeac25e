package action

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gyaneshwarpardhi/wirelab/internal/event"
)

// Registry maps event types to their executors.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu        sync.RWMutex
	executors map[event.Type]Executor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{executors: make(map[event.Type]Executor)}
}

// Register adds an executor. Panics on duplicate type to surface misconfiguration early.
func (r *Registry) Register(e Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.executors[e.Type()]; exists {
		panic(fmt.Sprintf("action registry: duplicate type %q", e.Type()))
	}
	r.executors[e.Type()] = e
}

// Get returns the executor for the given type.
func (r *Registry) Get(t event.Type) (Executor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.executors[t]
	if !ok {
		return nil, fmt.Errorf("no executor registered for event type %q: %w", t, ErrInvalidEvent)
	}
	return e, nil
}

// Validate looks up the executor for ev and runs its field checks.
func (r *Registry) Validate(ev *event.Event) error {
	e, err := r.Get(ev.Type)
	if err != nil {
		return err
	}
	return e.Validate(ev)
}

// Types returns all registered event types, sorted.
func (r *Registry) Types() []event.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]event.Type, 0, len(r.executors))
	for k := range r.executors {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
