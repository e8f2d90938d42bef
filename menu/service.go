package menu

import (
	"fmt"
	"sync"
)

// Service is the facade that hands out menus. It owns nothing itself, only
// wiring a registry, a command resolver and a context evaluator into every
// Menu it creates.
type Service struct {
	registry  *Registry
	resolver  CommandResolver
	evaluator ContextEvaluator
}

// NewService creates a menu service. resolver and evaluator may be nil: a
// nil resolver leaves every action enabled but uninvokable, a nil evaluator
// keeps every contribution visible.
func NewService(registry *Registry, resolver CommandResolver, evaluator ContextEvaluator) *Service {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Service{registry: registry, resolver: resolver, evaluator: evaluator}
}

// Registry returns the registry this service reads from.
func (s *Service) Registry() *Registry {
	return s.registry
}

// CreateMenu builds a live Menu bound to location and ctx. Dispose the menu
// when done to release its subscriptions.
func (s *Service) CreateMenu(location LocationID, ctx any) *Menu {
	return newMenu(s.registry, s.resolver, s.evaluator, location, ctx)
}

// Handler binds behavior to a command id for HandlerResolver. Enabled may be
// nil, meaning always enabled.
type Handler struct {
	Run     func() error
	Enabled func() bool
}

// HandlerResolver is the default CommandResolver: descriptors come from the
// registry's command table, behavior from an in-process handler map.
type HandlerResolver struct {
	mu       sync.RWMutex
	registry *Registry
	handlers map[CommandID]Handler
}

// NewHandlerResolver creates a resolver backed by registry's command table.
func NewHandlerResolver(registry *Registry) *HandlerResolver {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &HandlerResolver{
		registry: registry,
		handlers: make(map[CommandID]Handler),
	}
}

// SetHandler binds h to id, replacing any previous handler.
func (hr *HandlerResolver) SetHandler(id CommandID, h Handler) {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	hr.handlers[id] = h
}

// RemoveHandler unbinds the handler for id.
func (hr *HandlerResolver) RemoveHandler(id CommandID) {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	delete(hr.handlers, id)
}

// Resolve looks the command up in the registry's descriptor table.
func (hr *HandlerResolver) Resolve(id CommandID) (CommandDescriptor, bool) {
	return hr.registry.GetCommand(id)
}

// Enabled reports whether id may currently be invoked. Commands without a
// handler stay enabled; missing behavior surfaces as an Invoke error, not
// as a hidden or grayed entry.
func (hr *HandlerResolver) Enabled(id CommandID) bool {
	hr.mu.RLock()
	h, exists := hr.handlers[id]
	hr.mu.RUnlock()

	if !exists || h.Enabled == nil {
		return true
	}
	return h.Enabled()
}

// Invoke runs the handler bound to id.
func (hr *HandlerResolver) Invoke(id CommandID) error {
	hr.mu.RLock()
	h, exists := hr.handlers[id]
	hr.mu.RUnlock()

	if !exists || h.Run == nil {
		return fmt.Errorf("no handler registered for command %q", id)
	}
	if h.Enabled != nil && !h.Enabled() {
		return fmt.Errorf("command %q is disabled", id)
	}
	return h.Run()
}
