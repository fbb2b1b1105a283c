// Package lifecycle reports application foreground transitions.
package lifecycle

import (
	"log/slog"
	"sync"

	"github.com/Veraticus/bankwallet/internal/service"
)

// BackgroundManager tracks whether the application is in the foreground and
// notifies registered listeners on transitions.
type BackgroundManager struct {
	listeners  map[service.BackgroundListener]struct{}
	logger     *slog.Logger
	background bool
	mu         sync.Mutex
}

var _ service.BackgroundManager = (*BackgroundManager)(nil)

// NewBackgroundManager creates a manager that starts in the foreground.
func NewBackgroundManager() *BackgroundManager {
	return &BackgroundManager{
		listeners: make(map[service.BackgroundListener]struct{}),
		logger:    slog.Default().With("component", "background_manager"),
	}
}

// RegisterListener adds listener.
func (m *BackgroundManager) RegisterListener(listener service.BackgroundListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners[listener] = struct{}{}
}

// UnregisterListener removes listener.
func (m *BackgroundManager) UnregisterListener(listener service.BackgroundListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.listeners, listener)
}

// InBackground reports the current state.
func (m *BackgroundManager) InBackground() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.background
}

// EnterBackground records a transition to the background.
func (m *BackgroundManager) EnterBackground() {
	listeners, changed := m.transition(true)
	if !changed {
		return
	}
	m.logger.Debug("Entered background")
	for _, l := range listeners {
		l.DidEnterBackground()
	}
}

// EnterForeground records a transition to the foreground. Listeners are only
// notified when the application was in the background.
func (m *BackgroundManager) EnterForeground() {
	listeners, changed := m.transition(false)
	if !changed {
		return
	}
	m.logger.Debug("Entering foreground")
	for _, l := range listeners {
		l.WillEnterForeground()
	}
}

// transition updates the state and returns the listeners to notify. Listeners
// run outside the lock so they may unregister themselves.
func (m *BackgroundManager) transition(background bool) ([]service.BackgroundListener, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.background == background {
		return nil, false
	}
	m.background = background

	listeners := make([]service.BackgroundListener, 0, len(m.listeners))
	for l := range m.listeners {
		listeners = append(listeners, l)
	}
	return listeners, true
}
