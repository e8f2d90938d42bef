// Package cli bridges a menu location into a cobra command tree, so the
// same contributions that drive an interactive surface can be exposed as a
// command-line interface.
package cli

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"menukit/menu"
)

// NewMenuCommand materializes location through svc and returns a cobra
// command with one runnable subcommand per action. Menu groups become cobra
// command groups in materialized order, so help output mirrors the menu.
// The tree is a snapshot: rebuild after registry changes.
func NewMenuCommand(use string, svc *menu.Service, location menu.LocationID, ctx any) *cobra.Command {
	m := svc.CreateMenu(location, ctx)
	defer m.Dispose()
	snapshot := m.GetActions()

	root := &cobra.Command{
		Use:           use,
		Short:         fmt.Sprintf("Commands contributed to %s", location),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	names := make(map[string]bool)
	for _, group := range snapshot {
		groupID := group.Group
		if groupID != "" {
			root.AddGroup(&cobra.Group{ID: groupID, Title: groupTitle(groupID)})
		}
		for _, action := range group.Actions {
			root.AddCommand(newActionCommand(action, groupID, names))
		}
	}
	return root
}

func newActionCommand(action menu.Action, groupID string, names map[string]bool) *cobra.Command {
	name := commandName(string(action.ID), names)
	names[name] = true

	return &cobra.Command{
		Use:     name,
		Short:   action.Title,
		GroupID: groupID,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !action.Enabled {
				return fmt.Errorf("command %q is disabled", action.ID)
			}
			return action.Invoke()
		},
	}
}

// commandName derives a cobra-friendly name from a command id: the last
// dot-separated segment, falling back to the full id when that would
// collide with an earlier sibling.
func commandName(id string, taken map[string]bool) string {
	name := id
	if i := strings.LastIndexByte(id, '.'); i >= 0 && i+1 < len(id) {
		name = id[i+1:]
	}
	if taken[name] {
		return id
	}
	return name
}

// groupTitle renders a menu group key as a cobra group heading. Numeric
// sort prefixes are display noise and get stripped.
func groupTitle(group string) string {
	label := group
	if i := strings.IndexByte(label, '_'); i > 0 {
		digits := true
		for _, c := range label[:i] {
			if c < '0' || c > '9' {
				digits = false
				break
			}
		}
		if digits {
			label = label[i+1:]
		}
	}
	if label == "" {
		label = group
	}

	runes := []rune(label)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes) + ":"
}
