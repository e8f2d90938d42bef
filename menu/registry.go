package menu

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Registry is the process-wide table of menu-item contributions and command
// metadata. Producers register against locations at any time; menus read the
// raw lists back and subscribers are notified after every mutation. The
// registry itself never orders or filters anything; that is materialization.
type Registry struct {
	mu           sync.RWMutex
	items        map[LocationID][]*itemEntry
	commands     map[CommandID]*commandEntry
	commandOrder []CommandID
	locationSubs map[LocationID]map[int]func(LocationID)
	globalSubs   map[int]func(LocationID)
	nextSub      int
}

// itemEntry pairs a contribution with the token of the registration batch
// that produced it.
type itemEntry struct {
	token uuid.UUID
	item  ItemContribution
}

type commandEntry struct {
	token uuid.UUID
	desc  CommandDescriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		items:        make(map[LocationID][]*itemEntry),
		commands:     make(map[CommandID]*commandEntry),
		locationSubs: make(map[LocationID]map[int]func(LocationID)),
		globalSubs:   make(map[int]func(LocationID)),
	}
}

// Global registry instance
var globalRegistry *Registry
var registryOnce sync.Once

// DefaultRegistry returns the process-wide registry, creating it on first
// use.
func DefaultRegistry() *Registry {
	registryOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Registration is the disposal handle returned by every register call.
// Disposing removes exactly what the call added; disposing twice is a no-op.
type Registration struct {
	registry *Registry
	token    uuid.UUID
	once     sync.Once
}

// Token returns the release token backing this registration. The same
// cleanup can be performed by passing it to Registry.Release.
func (r *Registration) Token() uuid.UUID {
	return r.token
}

// Dispose removes everything registered by the originating call.
func (r *Registration) Dispose() {
	r.once.Do(func() {
		r.registry.Release(r.token)
	})
}

// RegisterItem appends one contribution to the list for location and fires
// the location's change notification. Unknown locations are created
// implicitly. Panics if the contribution names no command, matching the
// registration-time contract for commands themselves.
func (r *Registry) RegisterItem(location LocationID, item ItemContribution) *Registration {
	return r.RegisterItems(location, []ItemContribution{item})
}

// RegisterItems is the bulk form of RegisterItem: the returned handle
// disposes the whole batch together, and subscribers see a single change
// notification for the batch.
func (r *Registry) RegisterItems(location LocationID, items []ItemContribution) *Registration {
	for _, item := range items {
		if item.Command.ID == "" {
			panic("menu: contribution command ID cannot be empty")
		}
	}

	token := uuid.New()

	r.mu.Lock()
	for i := range items {
		r.items[location] = append(r.items[location], &itemEntry{token: token, item: items[i]})
	}
	notify := r.subscribersLocked(location)
	r.mu.Unlock()

	fire(notify, location)
	return &Registration{registry: r, token: token}
}

// RegisterCommand registers global command metadata, independent of any menu
// location. Registering the same ID again replaces the descriptor. Command
// metadata feeds title/icon fallback everywhere and implicit entries in the
// command palette, so palette subscribers are notified.
func (r *Registry) RegisterCommand(desc CommandDescriptor) *Registration {
	if desc.ID == "" {
		panic("menu: command ID cannot be empty")
	}

	token := uuid.New()

	r.mu.Lock()
	if _, exists := r.commands[desc.ID]; !exists {
		r.commandOrder = append(r.commandOrder, desc.ID)
	}
	r.commands[desc.ID] = &commandEntry{token: token, desc: desc}
	notify := r.subscribersLocked(LocationCommandPalette)
	r.mu.Unlock()

	fire(notify, LocationCommandPalette)
	return &Registration{registry: r, token: token}
}

// Release removes every item and command registered under token. Releasing
// an unknown or already-released token is a no-op. One notification fires
// per affected location.
func (r *Registry) Release(token uuid.UUID) {
	type pending struct {
		location LocationID
		fns      []func(LocationID)
	}

	r.mu.Lock()
	var affected []pending
	for location, entries := range r.items {
		kept := entries[:0]
		removed := false
		for _, e := range entries {
			if e.token == token {
				removed = true
				continue
			}
			kept = append(kept, e)
		}
		if removed {
			r.items[location] = kept
			affected = append(affected, pending{location, r.subscribersLocked(location)})
		}
	}
	for id, e := range r.commands {
		if e.token != token {
			continue
		}
		delete(r.commands, id)
		for i, ordered := range r.commandOrder {
			if ordered == id {
				r.commandOrder = append(r.commandOrder[:i], r.commandOrder[i+1:]...)
				break
			}
		}
		affected = append(affected, pending{LocationCommandPalette, r.subscribersLocked(LocationCommandPalette)})
	}
	r.mu.Unlock()

	for _, p := range affected {
		fire(p.fns, p.location)
	}
}

// GetItems returns the current raw contribution list for location, in
// registration order. Unknown locations yield an empty list, not an error.
func (r *Registry) GetItems(location LocationID) []ItemContribution {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.items[location]
	items := make([]ItemContribution, len(entries))
	for i, e := range entries {
		items[i] = e.item
	}
	return items
}

// GetCommand retrieves a registered command descriptor by ID.
func (r *Registry) GetCommand(id CommandID) (CommandDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.commands[id]
	if !exists {
		return CommandDescriptor{}, false
	}
	return e.desc, true
}

// GetAllCommands returns every registered command descriptor in registration
// order.
func (r *Registry) GetAllCommands() []CommandDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descs := make([]CommandDescriptor, 0, len(r.commandOrder))
	for _, id := range r.commandOrder {
		descs = append(descs, r.commands[id].desc)
	}
	return descs
}

// Locations returns every location that has ever received a contribution.
// Order is unspecified.
func (r *Registry) Locations() []LocationID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locations := make([]LocationID, 0, len(r.items))
	for location := range r.items {
		locations = append(locations, location)
	}
	return locations
}

// Subscription is the disposal handle for a change-notification subscriber.
type Subscription struct {
	registry *Registry
	location LocationID
	global   bool
	id       int
	once     sync.Once
}

// Dispose removes the subscriber. Safe to call more than once.
func (s *Subscription) Dispose() {
	s.once.Do(func() {
		s.registry.mu.Lock()
		if s.global {
			delete(s.registry.globalSubs, s.id)
		} else if subs := s.registry.locationSubs[s.location]; subs != nil {
			delete(subs, s.id)
		}
		s.registry.mu.Unlock()
	})
}

// Subscribe registers fn to run after every change to the given location's
// contributions. Callbacks run outside the registry lock, after the mutation
// is visible to readers.
func (r *Registry) Subscribe(location LocationID, fn func(LocationID)) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSub++
	if r.locationSubs[location] == nil {
		r.locationSubs[location] = make(map[int]func(LocationID))
	}
	r.locationSubs[location][r.nextSub] = fn
	return &Subscription{registry: r, location: location, id: r.nextSub}
}

// SubscribeAll registers fn to run after changes to any location.
func (r *Registry) SubscribeAll(fn func(LocationID)) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSub++
	r.globalSubs[r.nextSub] = fn
	return &Subscription{registry: r, global: true, id: r.nextSub}
}

// subscribersLocked snapshots the callbacks interested in location. Caller
// holds r.mu.
func (r *Registry) subscribersLocked(location LocationID) []func(LocationID) {
	fns := make([]func(LocationID), 0, len(r.locationSubs[location])+len(r.globalSubs))
	for _, fn := range r.locationSubs[location] {
		fns = append(fns, fn)
	}
	for _, fn := range r.globalSubs {
		fns = append(fns, fn)
	}
	return fns
}

func fire(fns []func(LocationID), location LocationID) {
	for _, fn := range fns {
		fn(location)
	}
}

// String returns a debug string representation of the registry
func (r *Registry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("Registry:\n")

	sb.WriteString("  Commands:\n")
	for _, id := range r.commandOrder {
		sb.WriteString(fmt.Sprintf("    %s: %s\n", id, r.commands[id].desc.Title))
	}

	sb.WriteString("  Locations:\n")
	for location, entries := range r.items {
		sb.WriteString(fmt.Sprintf("    %s: %d items\n", location, len(entries)))
	}

	return sb.String()
}
