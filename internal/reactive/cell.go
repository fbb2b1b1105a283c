package reactive

import "sync"

// Cell holds the latest value of T and notifies observers on every Set.
type Cell[T any] struct {
	value    T
	subs     map[int]chan T
	watchers map[int]func(T)
	next     int
	mu       sync.Mutex
	// setMu keeps watcher invocations in Set order.
	setMu sync.Mutex
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value:    initial,
		subs:     make(map[int]chan T),
		watchers: make(map[int]func(T)),
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the value. Watchers run synchronously on the calling
// goroutine; subscribers receive the latest value, dropping any value they
// have not yet read.
func (c *Cell[T]) Set(v T) {
	c.setMu.Lock()
	defer c.setMu.Unlock()

	c.mu.Lock()
	c.value = v
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
	watchers := make([]func(T), 0, len(c.watchers))
	for _, fn := range c.watchers {
		watchers = append(watchers, fn)
	}
	c.mu.Unlock()

	for _, fn := range watchers {
		fn(v)
	}
}

// Subscribe returns a conflated channel primed with the current value and a
// function that removes the subscription and closes the channel.
func (c *Cell[T]) Subscribe() (<-chan T, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	ch := make(chan T, 1)
	ch <- c.value
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
}

// Watch registers fn to observe every subsequent Set. The returned function
// removes the watcher.
func (c *Cell[T]) Watch(fn func(T)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	c.watchers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.watchers, id)
	}
}
