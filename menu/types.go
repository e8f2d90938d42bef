package menu

import "fmt"

// LocationID names a distinct menu surface (a context menu, the command
// palette, a toolbar). Locations are created implicitly on first use; the set
// of known locations is process-wide and append-only.
type LocationID string

// CommandID uniquely identifies a command
type CommandID string

// CommandDescriptor is the global presentation metadata for a command,
// registered independently of any menu location.
type CommandDescriptor struct {
	ID    CommandID
	Title string
	Icon  string
}

// CommandRef names the command a contribution points at. Title and Icon, when
// set, override the registered descriptor's presentation for that one item.
type CommandRef struct {
	ID    CommandID
	Title string
	Icon  string
}

// ItemContribution is one registration record for a menu location.
type ItemContribution struct {
	Command CommandRef

	// Group buckets related items. The empty string is a valid, distinct
	// group; groups are compared by exact value, never normalized.
	Group string

	// Order is the in-group sort hint. nil means unordered: treated as 0 in
	// regular groups, and as last in the navigation group.
	Order *float64

	// When is a visibility predicate evaluated against the menu's context.
	// Empty means always visible.
	When string
}

// Order is a helper for building contributions with an explicit order.
func Order(v float64) *float64 {
	return &v
}

// Action is one resolved, renderable entry of a materialized menu.
type Action struct {
	ID      CommandID
	Title   string
	Icon    string
	Enabled bool

	resolver CommandResolver
}

// Invoke runs the action's command through the resolver it was materialized
// with.
func (a Action) Invoke() error {
	if a.resolver == nil {
		return fmt.Errorf("no resolver bound for command %q", a.ID)
	}
	return a.resolver.Invoke(a.ID)
}

// ActionGroup is one ordered group of a snapshot.
type ActionGroup struct {
	Group   string
	Actions []Action
}

// Snapshot is the output of materialization: groups in display order, each
// holding its actions in display order. It is derived state, recomputed on
// every GetActions call and never persisted.
type Snapshot []ActionGroup

// ContextEvaluator decides whether a contribution's When predicate holds for
// a context. An evaluation error hides the item rather than failing the menu.
type ContextEvaluator interface {
	Evaluate(expr string, ctx any) (bool, error)
}

// CommandResolver supplies fallback presentation, enablement and execution
// for commands referenced by contributions.
type CommandResolver interface {
	Resolve(id CommandID) (CommandDescriptor, bool)
	Enabled(id CommandID) bool
	Invoke(id CommandID) error
}

// ObservableContext is implemented by live contexts that can change after a
// Menu is created. The Menu subscribes and re-fires its own change event.
type ObservableContext interface {
	OnChange(fn func()) (cancel func())
}
