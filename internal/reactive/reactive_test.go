package reactive

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_NotifyCoalesces(t *testing.T) {
	s := NewSignal()
	ch, unsubscribe := s.Subscribe()
	defer unsubscribe()

	s.Notify()
	s.Notify()
	s.Notify()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a notification")
	}

	select {
	case <-ch:
		t.Fatal("notifications should coalesce")
	default:
	}
}

func TestSignal_Unsubscribe(t *testing.T) {
	s := NewSignal()
	ch, unsubscribe := s.Subscribe()
	require.Equal(t, 1, s.Subscribers())

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, s.Subscribers())

	_, open := <-ch
	assert.False(t, open)

	assert.NotPanics(t, s.Notify)
}

func TestSignal_BroadcastsToAll(t *testing.T) {
	s := NewSignal()
	a, unsubA := s.Subscribe()
	defer unsubA()
	b, unsubB := s.Subscribe()
	defer unsubB()

	s.Notify()

	for _, ch := range []<-chan struct{}{a, b} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("subscriber missed notification")
		}
	}
}

func TestCell_GetSet(t *testing.T) {
	c := NewCell(1)
	assert.Equal(t, 1, c.Get())

	c.Set(2)
	assert.Equal(t, 2, c.Get())
}

func TestCell_SubscribeIsPrimedAndConflated(t *testing.T) {
	c := NewCell("initial")
	ch, unsubscribe := c.Subscribe()
	defer unsubscribe()

	assert.Equal(t, "initial", <-ch)

	c.Set("a")
	c.Set("b")
	c.Set("c")

	assert.Equal(t, "c", <-ch)
	select {
	case v := <-ch:
		t.Fatalf("unexpected stale value %q", v)
	default:
	}
}

func TestCell_WatchSeesEverySetInOrder(t *testing.T) {
	c := NewCell(0)

	var (
		mu   sync.Mutex
		seen []int
	)
	stop := c.Watch(func(v int) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, v)
	})

	for i := 1; i <= 5; i++ {
		c.Set(i)
	}
	stop()
	c.Set(6)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seen)
}

func TestCell_WatcherMayReadCell(t *testing.T) {
	c := NewCell(0)
	var observed int
	stop := c.Watch(func(int) { observed = c.Get() })
	defer stop()

	c.Set(7)
	assert.Equal(t, 7, observed)
}
