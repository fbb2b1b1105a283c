package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingListener struct {
	foreground int
	background int
}

func (l *countingListener) WillEnterForeground() { l.foreground++ }
func (l *countingListener) DidEnterBackground()  { l.background++ }

func TestBackgroundManager_Transitions(t *testing.T) {
	m := NewBackgroundManager()
	l := &countingListener{}
	m.RegisterListener(l)

	assert.False(t, m.InBackground())

	m.EnterForeground()
	assert.Equal(t, 0, l.foreground, "already in foreground")

	m.EnterBackground()
	m.EnterBackground()
	assert.True(t, m.InBackground())
	assert.Equal(t, 1, l.background)

	m.EnterForeground()
	assert.False(t, m.InBackground())
	assert.Equal(t, 1, l.foreground)

	m.UnregisterListener(l)
	m.EnterBackground()
	m.EnterForeground()
	assert.Equal(t, 1, l.foreground)
	assert.Equal(t, 1, l.background)
}

type selfRemovingListener struct {
	manager *BackgroundManager
	calls   int
}

func (l *selfRemovingListener) WillEnterForeground() {
	l.calls++
	l.manager.UnregisterListener(l)
}

func (l *selfRemovingListener) DidEnterBackground() {}

func TestBackgroundManager_ListenerMayUnregisterDuringNotify(t *testing.T) {
	m := NewBackgroundManager()
	l := &selfRemovingListener{manager: m}
	m.RegisterListener(l)

	m.EnterBackground()
	m.EnterForeground()
	m.EnterBackground()
	m.EnterForeground()

	assert.Equal(t, 1, l.calls)
}
