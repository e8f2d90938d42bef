package when

import (
	"reflect"
	"sync"
)

// Context is a live key/value snapshot of UI state. It satisfies Getter for
// predicate evaluation and notifies subscribers when a value actually
// changes, which the menu package uses to re-fire its own change event.
type Context struct {
	mu     sync.RWMutex
	values map[string]any
	subs   map[int]func()
	nextID int
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{
		values: make(map[string]any),
		subs:   make(map[int]func()),
	}
}

// Get returns the value for key and whether it is set.
func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.values[key]
	return v, ok
}

// Set stores value under key. Subscribers are only notified when the value
// actually changed.
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	old, existed := c.values[key]
	if existed && reflect.DeepEqual(old, value) {
		c.mu.Unlock()
		return
	}
	c.values[key] = value
	fns := c.subscribersLocked()
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Delete removes key. Deleting an unset key is a no-op.
func (c *Context) Delete(key string) {
	c.mu.Lock()
	if _, existed := c.values[key]; !existed {
		c.mu.Unlock()
		return
	}
	delete(c.values, key)
	fns := c.subscribersLocked()
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// OnChange registers fn to run after every effective mutation. The returned
// cancel func removes the subscription; calling it more than once is safe.
func (c *Context) OnChange(fn func()) (cancel func()) {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// subscribersLocked snapshots the callbacks. Caller holds c.mu.
func (c *Context) subscribersLocked() []func() {
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	return fns
}
