package menu

import (
	"math"
	"sort"
	"time"

	"menukit/log"
)

// predicateWarnEvery keeps a menu that re-materializes on every render from
// flooding the log when a contribution carries a broken predicate.
var predicateWarnEvery = log.NewEvery(30 * time.Second)

// resolvedItem is the working form of a contribution between the visibility
// filter and the final snapshot.
type resolvedItem struct {
	action Action
	group  string
	order  *float64
}

// GetActions materializes the menu: it filters the location's current
// contributions by the context, resolves presentation, groups, orders and
// returns the result. It is a pure function of the registry contents and the
// context at call time: repeated calls with neither changed return
// structurally equal snapshots.
func (m *Menu) GetActions() Snapshot {
	items := m.registry.GetItems(m.location)
	if m.location == LocationCommandPalette {
		items = append(items, m.implicitPaletteItems(items)...)
	}

	grouped := make(map[string][]resolvedItem)
	var groupKeys []string
	for _, item := range items {
		if !m.visible(item) {
			continue
		}
		resolved := m.resolve(item)
		if _, seen := grouped[item.Group]; !seen {
			groupKeys = append(groupKeys, item.Group)
		}
		grouped[item.Group] = append(grouped[item.Group], resolved)
	}

	sort.Slice(groupKeys, func(i, j int) bool {
		return compareGroupKeys(groupKeys[i], groupKeys[j]) < 0
	})

	snapshot := make(Snapshot, 0, len(groupKeys))
	for _, key := range groupKeys {
		group := grouped[key]
		sortGroup(key, group)
		actions := make([]Action, len(group))
		for i, item := range group {
			actions[i] = item.action
		}
		snapshot = append(snapshot, ActionGroup{Group: key, Actions: actions})
	}
	return snapshot
}

// implicitPaletteItems synthesizes palette entries for registered commands
// that no contribution targets, so every known command stays discoverable.
// An explicit contribution suppresses the implicit entry even when its
// predicate currently hides it.
func (m *Menu) implicitPaletteItems(explicit []ItemContribution) []ItemContribution {
	contributed := make(map[CommandID]bool, len(explicit))
	for _, item := range explicit {
		contributed[item.Command.ID] = true
	}

	var implicit []ItemContribution
	for _, desc := range m.registry.GetAllCommands() {
		if contributed[desc.ID] {
			continue
		}
		implicit = append(implicit, ItemContribution{Command: CommandRef{ID: desc.ID}})
	}
	return implicit
}

// visible applies the contribution's When predicate. Absent predicates and
// menus without an evaluator keep the item; an evaluation failure hides it
// so one bad contribution cannot break the whole menu.
func (m *Menu) visible(item ItemContribution) bool {
	if item.When == "" || m.evaluator == nil {
		return true
	}
	ok, err := m.evaluator.Evaluate(item.When, m.context)
	if err != nil {
		if predicateWarnEvery.ShouldLog() {
			log.WarningLog.Printf("hiding %q in %s: when clause %q: %v", item.Command.ID, m.location, item.When, err)
		}
		return false
	}
	return ok
}

// resolve computes the item's final presentation: the contribution's inline
// override wins, then the registry's command descriptor, then whatever the
// resolver knows. An item with no title anywhere is still emitted.
func (m *Menu) resolve(item ItemContribution) resolvedItem {
	id := item.Command.ID

	desc, found := m.registry.GetCommand(id)
	if !found && m.resolver != nil {
		desc, _ = m.resolver.Resolve(id)
	}

	title := item.Command.Title
	if title == "" {
		title = desc.Title
	}
	icon := item.Command.Icon
	if icon == "" {
		icon = desc.Icon
	}

	enabled := true
	if m.resolver != nil {
		enabled = m.resolver.Enabled(id)
	}

	return resolvedItem{
		action: Action{ID: id, Title: title, Icon: icon, Enabled: enabled, resolver: m.resolver},
		group:  item.Group,
		order:  item.Order,
	}
}

// sortGroup orders the items of one group in place. The navigation group
// sorts strictly by order hint with unordered items last; every other group
// sorts by order hint (absent means 0) and breaks ties on title,
// case-insensitively. Remaining ties keep registration order.
func sortGroup(key string, items []resolvedItem) {
	if key == GroupNavigation {
		sort.SliceStable(items, func(i, j int) bool {
			return navigationOrder(items[i]) < navigationOrder(items[j])
		})
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		oi, oj := effectiveOrder(items[i]), effectiveOrder(items[j])
		if oi != oj {
			return oi < oj
		}
		return compareTitles(items[i].action.Title, items[j].action.Title) < 0
	})
}

func navigationOrder(item resolvedItem) float64 {
	if item.order == nil {
		return math.Inf(1)
	}
	return *item.order
}

func effectiveOrder(item resolvedItem) float64 {
	if item.order == nil {
		return 0
	}
	return *item.order
}
