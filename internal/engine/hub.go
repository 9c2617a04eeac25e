package engine

import "sync"

const subscriberBuffer = 16

// hub fans results out to per-session subscribers.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[chan *EventResult]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[chan *EventResult]struct{})}
}

func (h *hub) subscribe(sessionID string) (<-chan *EventResult, func()) {
	ch := make(chan *EventResult, subscriberBuffer)
	h.mu.Lock()
	set, ok := h.subs[sessionID]
	if !ok {
		set = make(map[chan *EventResult]struct{})
		h.subs[sessionID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		set, ok := h.subs[sessionID]
		if !ok {
			return
		}
		if _, ok := set[ch]; !ok {
			return
		}
		delete(set, ch)
		close(ch)
		if len(set) == 0 {
			delete(h.subs, sessionID)
		}
	}
	return ch, cancel
}

// publish never blocks; a full subscriber misses r.
func (h *hub) publish(sessionID string, r *EventResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[sessionID] {
		select {
		case ch <- r:
		default:
		}
	}
}

func (h *hub) close(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[sessionID] {
		close(ch)
	}
	delete(h.subs, sessionID)
}
