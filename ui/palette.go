package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"menukit/config"
	"menukit/log"
	"menukit/menu"
	"menukit/ui/debounce"
	"menukit/ui/fuzzy"
)

var groupHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#36CFC9"})

var actionStyle = lipgloss.NewStyle().
	Padding(0, 0, 0, 2).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})

var selectedActionStyle = lipgloss.NewStyle().
	Padding(0, 0, 0, 2).
	Background(lipgloss.Color("#dde4f0")).
	Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#1a1a1a"})

var disabledActionStyle = lipgloss.NewStyle().
	Padding(0, 0, 0, 2).
	Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

var idStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FFA500"))

// refreshDelay is how long a burst of menu change events may settle before
// the palette re-materializes.
const refreshDelay = 100 * time.Millisecond

// row is one display line of the palette: either a group header or an
// action.
type row struct {
	header bool
	group  string
	action menu.Action
}

// refreshMsg tells the update loop the menu changed and the snapshot is
// stale.
type refreshMsg struct{}

// Palette is a bubbletea model presenting one menu as a filterable command
// palette. It tracks the menu's change event and re-materializes on the
// fly; invoked commands are recorded in the persisted recent-commands list
// when a config state is attached.
type Palette struct {
	menu  *menu.Menu
	state *config.State

	input    textinput.Model
	snapshot menu.Snapshot
	rows     []row
	selected int
	width    int
	height   int
	status   string

	deb      *debounce.Debouncer
	changes  chan struct{}
	listener *menu.Listener
}

// NewPalette creates a palette over m. state may be nil; without it no
// recent-command history is recorded.
func NewPalette(m *menu.Menu, state *config.State) *Palette {
	input := textinput.New()
	input.Placeholder = "Type a command"
	input.Prompt = "> "
	input.Focus()

	p := &Palette{
		menu:     m,
		state:    state,
		input:    input,
		selected: -1,
		width:    80,
		height:   24,
		deb:      debounce.New(refreshDelay),
		changes:  make(chan struct{}, 1),
	}
	p.listener = m.OnChange(func() {
		p.deb.Trigger(p.notifyStale)
	})
	p.reload()
	return p
}

// notifyStale nudges the update loop without blocking the registry's
// notification path.
func (p *Palette) notifyStale() {
	select {
	case p.changes <- struct{}{}:
	default:
	}
}

func (p *Palette) waitForRefresh() tea.Cmd {
	return func() tea.Msg {
		<-p.changes
		return refreshMsg{}
	}
}

func (p *Palette) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, p.waitForRefresh())
}

func (p *Palette) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case refreshMsg:
		p.reload()
		return p, p.waitForRefresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			p.dispose()
			return p, tea.Quit
		case "up":
			p.moveSelection(-1)
			return p, nil
		case "down":
			p.moveSelection(1)
			return p, nil
		case "enter":
			p.invokeSelected()
			return p, nil
		case "ctrl+y":
			p.copySelected()
			return p, nil
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.applyFilter()
	}
	return p, cmd
}

// reload re-materializes the menu and reapplies the filter.
func (p *Palette) reload() {
	p.snapshot = p.menu.GetActions()
	p.applyFilter()
}

// applyFilter rebuilds the visible rows. An empty query shows the grouped
// snapshot with headers; a non-empty query shows a flat fuzzy-ranked list.
func (p *Palette) applyFilter() {
	query := p.input.Value()
	p.rows = p.rows[:0]

	if query == "" {
		for _, group := range p.snapshot {
			p.rows = append(p.rows, row{header: true, group: group.Group})
			for _, action := range group.Actions {
				p.rows = append(p.rows, row{group: group.Group, action: action})
			}
		}
	} else {
		var flat []row
		var targets []string
		for _, group := range p.snapshot {
			for _, action := range group.Actions {
				flat = append(flat, row{group: group.Group, action: action})
				targets = append(targets, action.Title+" "+string(action.ID))
			}
		}
		for _, ranked := range fuzzy.Rank(query, targets) {
			p.rows = append(p.rows, flat[ranked.Index])
		}
	}

	p.selected = -1
	p.moveSelection(1)
}

// moveSelection advances the selection by delta, skipping group headers.
func (p *Palette) moveSelection(delta int) {
	if len(p.rows) == 0 {
		p.selected = -1
		return
	}
	i := p.selected
	for {
		i += delta
		if i < 0 || i >= len(p.rows) {
			return
		}
		if !p.rows[i].header {
			p.selected = i
			return
		}
	}
}

func (p *Palette) invokeSelected() {
	if p.selected < 0 || p.selected >= len(p.rows) {
		return
	}
	action := p.rows[p.selected].action
	if !action.Enabled {
		p.status = fmt.Sprintf("%s is disabled", action.Title)
		return
	}

	if err := action.Invoke(); err != nil {
		log.WarningLog.Printf("invoke %q: %v", action.ID, err)
		p.status = fmt.Sprintf("%s failed: %v", action.Title, err)
		return
	}
	p.status = fmt.Sprintf("ran %s", action.Title)

	if p.state != nil {
		p.state.TouchRecentCommand(string(action.ID))
		if err := config.SaveState(p.state); err != nil {
			log.WarningLog.Printf("failed to save menu state: %v", err)
		}
	}
}

func (p *Palette) copySelected() {
	if p.selected < 0 || p.selected >= len(p.rows) {
		return
	}
	action := p.rows[p.selected].action
	if err := clipboard.WriteAll(string(action.ID)); err != nil {
		log.WarningLog.Printf("copy %q to clipboard: %v", action.ID, err)
		p.status = "clipboard unavailable"
		return
	}
	p.status = fmt.Sprintf("copied %s", action.ID)
}

func (p *Palette) dispose() {
	p.deb.Cancel()
	p.listener.Dispose()
	p.menu.Dispose()
}

func (p *Palette) View() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	maxTitle := p.width - 30
	if maxTitle < 10 {
		maxTitle = 10
	}

	for i, r := range p.rows {
		if r.header {
			label := r.group
			if label == "" {
				label = "other"
			}
			b.WriteString(groupHeaderStyle.Render(label))
			b.WriteString("\n")
			continue
		}

		title := truncate.StringWithTail(r.action.Title, uint(maxTitle), "…")
		line := runewidth.FillRight(title, maxTitle) + " " + idStyle.Render(string(r.action.ID))

		style := actionStyle
		switch {
		case i == p.selected:
			style = selectedActionStyle
		case !r.action.Enabled:
			style = disabledActionStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if len(p.rows) == 0 {
		b.WriteString(disabledActionStyle.Render("no matching commands"))
		b.WriteString("\n")
	}
	if p.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(p.status))
	}

	return b.String()
}
