package menu

import "sync"

// Menu is a live, subscribable view over one (location, context) pair.
// GetActions materializes the current registry contents on every call; the
// change event tells callers when a cached snapshot has gone stale.
type Menu struct {
	registry  *Registry
	resolver  CommandResolver
	evaluator ContextEvaluator
	location  LocationID
	context   any

	mu        sync.Mutex
	listeners map[int]func()
	nextID    int
	regSub    *Subscription
	ctxCancel func()
	disposed  bool
}

func newMenu(registry *Registry, resolver CommandResolver, evaluator ContextEvaluator, location LocationID, ctx any) *Menu {
	m := &Menu{
		registry:  registry,
		resolver:  resolver,
		evaluator: evaluator,
		location:  location,
		context:   ctx,
		listeners: make(map[int]func()),
	}

	m.regSub = registry.Subscribe(location, func(LocationID) {
		m.fireChanged()
	})
	if observable, ok := ctx.(ObservableContext); ok {
		m.ctxCancel = observable.OnChange(m.fireChanged)
	}
	return m
}

// Location returns the menu surface this view is bound to.
func (m *Menu) Location() LocationID {
	return m.location
}

// Listener is the disposal handle for a menu change subscriber.
type Listener struct {
	menu *Menu
	id   int
	once sync.Once
}

// Dispose removes the listener. Safe to call more than once.
func (l *Listener) Dispose() {
	l.once.Do(func() {
		l.menu.mu.Lock()
		delete(l.menu.listeners, l.id)
		l.menu.mu.Unlock()
	})
}

// OnChange registers fn to run whenever the registry's contents for this
// location change or the bound context changes. Callers should re-invoke
// GetActions afterwards rather than patch a stale snapshot.
func (m *Menu) OnChange(fn func()) *Listener {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.listeners[m.nextID] = fn
	return &Listener{menu: m, id: m.nextID}
}

// Dispose releases the menu's subscriptions. It never mutates the registry;
// contributions registered elsewhere stay put.
func (m *Menu) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	m.listeners = make(map[int]func())
	m.mu.Unlock()

	m.regSub.Dispose()
	if m.ctxCancel != nil {
		m.ctxCancel()
	}
}

func (m *Menu) fireChanged() {
	m.mu.Lock()
	fns := make([]func(), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
