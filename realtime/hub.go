// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import "sync"

// Hub fans out "something changed" signals per event. The contract is
// deliberately thin: delivery is at-least-once and unordered, with no
// payload - subscribers must refetch and recompute from stored state.
// Signals for an event are coalesced while a subscriber is slow, which
// is safe because recomputation is total, never incremental.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{} // event id -> subscriber channels
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe registers interest in changes for an event. The returned
// cancel func must be called when the subscriber goes away.
func (h *Hub) Subscribe(eventID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[eventID] == nil {
		h.subs[eventID] = make(map[chan struct{}]struct{})
	}
	h.subs[eventID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.subs[eventID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, eventID)
			}
		}
	}
	return ch, cancel
}

// Notify signals every subscriber of the event. Never blocks: a
// subscriber that already has a pending signal keeps just that one.
func (h *Hub) Notify(eventID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[eventID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SubscriberCount reports how many subscribers an event has.
func (h *Hub) SubscriberCount(eventID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[eventID])
}
