package menu

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// renderSnapshot flattens a snapshot into a stable text form for golden
// comparison: one header line per group, one line per action with a leading
// "-" marker for disabled entries.
func renderSnapshot(s Snapshot) []byte {
	var b bytes.Buffer
	for _, group := range s {
		label := group.Group
		if label == "" {
			label = "(default)"
		}
		fmt.Fprintf(&b, "[%s]\n", label)
		for _, action := range group.Actions {
			state := " "
			if !action.Enabled {
				state = "-"
			}
			fmt.Fprintf(&b, "%s %-24s %s\n", state, action.ID, action.Title)
		}
	}
	return b.Bytes()
}

func TestPaletteSnapshotGolden(t *testing.T) {
	r := NewRegistry()
	r.RegisterCommand(CommandDescriptor{ID: "help.about", Title: "About"})
	r.RegisterItems(LocationCommandPalette, []ItemContribution{
		{Command: CommandRef{ID: "nav.back", Title: "Back"}, Group: GroupNavigation, Order: Order(1)},
		{Command: CommandRef{ID: "nav.forward", Title: "Forward"}, Group: GroupNavigation, Order: Order(2)},
		{Command: CommandRef{ID: "file.new", Title: "New File"}, Group: "0_hello"},
		{Command: CommandRef{ID: "edit.copy", Title: "Copy"}, Group: "hello", Order: Order(2)},
		{Command: CommandRef{ID: "edit.cut", Title: "Cut"}, Group: "hello", Order: Order(1)},
		{Command: CommandRef{ID: "view.zoom", Title: "Zoom"}, Group: "Hello"},
		{Command: CommandRef{ID: "misc.noop", Title: "Noop"}},
	})

	resolver := &stubResolver{disabled: map[CommandID]bool{"view.zoom": true}}
	m := NewService(r, resolver, nil).CreateMenu(LocationCommandPalette, nil)
	defer m.Dispose()

	g := goldie.New(t)
	g.Assert(t, "palette", renderSnapshot(m.GetActions()))
}
