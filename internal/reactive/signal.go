// Package reactive provides small notification primitives used to connect
// long-lived services without callbacks crossing goroutines.
package reactive

import "sync"

// Signal broadcasts empty notifications to subscribers. Notifications are
// coalesced: a subscriber that has not drained its channel sees at most one
// pending notification.
type Signal struct {
	subs map[int]chan struct{}
	next int
	mu   sync.Mutex
}

// NewSignal creates a signal with no subscribers.
func NewSignal() *Signal {
	return &Signal{subs: make(map[int]chan struct{})}
}

// Subscribe returns a channel that receives notifications and a function that
// removes the subscription. The channel is closed on unsubscribe.
func (s *Signal) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Notify wakes every subscriber without blocking.
func (s *Signal) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers reports the number of active subscriptions.
func (s *Signal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
