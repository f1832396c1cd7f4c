// Package events fans out "posts changed" signals to live subscribers.
package events

import "sync"

// Hub tracks subscribers per user. Notify never blocks: each subscriber
// has a one-slot channel, so bursts of changes collapse into one signal.
type Hub struct {
	mu   sync.Mutex
	subs map[int64]map[*Subscription]struct{}
}

type Subscription struct {
	userID int64
	c      chan struct{}
	hub    *Hub
	once   sync.Once
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[*Subscription]struct{})}
}

func (h *Hub) Subscribe(userID int64) *Subscription {
	s := &Subscription{userID: userID, c: make(chan struct{}, 1), hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscription]struct{})
	}
	h.subs[userID][s] = struct{}{}
	return s
}

// Notify signals every subscriber of userID.
func (h *Hub) Notify(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[userID] {
		select {
		case s.c <- struct{}{}:
		default:
		}
	}
}

// Subscribers reports how many subscriptions userID has open.
func (h *Hub) Subscribers(userID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}

// C receives a value after each change. It is closed by Close.
func (s *Subscription) C() <-chan struct{} {
	return s.c
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		h := s.hub
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[s.userID], s)
		if len(h.subs[s.userID]) == 0 {
			delete(h.subs, s.userID)
		}
		close(s.c)
	})
}
