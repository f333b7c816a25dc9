// Package stopwatch provides the tab that shows and controls the stopwatch.
package stopwatch

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/stopwatch-tui/internal/app"
	sw "github.com/j-veylop/stopwatch-tui/internal/stopwatch"
)

// keyMap defines the key bindings specific to the stopwatch tab.
type keyMap struct {
	Toggle key.Binding
	Start  key.Binding
	Stop   key.Binding
	Reset  key.Binding
	Copy   key.Binding
}

// defaultKeyMap returns the default key bindings for the stopwatch tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "start/stop"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy time"),
		),
	}
}

// Model represents the stopwatch tab state. The engine itself lives in the
// shared app state; this tab only issues controls and renders it.
type Model struct {
	state  *app.State
	keys   keyMap
	width  int
	height int
}

// New creates a new stopwatch tab model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		keys:  defaultKeyMap(),
	}
}

// Init initializes the stopwatch tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stopwatch tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m, m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	engine := m.state.Engine()

	switch {
	case key.Matches(msg, m.keys.Toggle):
		if engine.Running() {
			return app.ApplyControl(engine, engine.Stop)
		}
		return app.ApplyControl(engine, engine.Start)

	case key.Matches(msg, m.keys.Start):
		return app.ApplyControl(engine, engine.Start)

	case key.Matches(msg, m.keys.Stop):
		return app.ApplyControl(engine, engine.Stop)

	case key.Matches(msg, m.keys.Reset):
		return app.ApplyControl(engine, engine.Reset)

	case key.Matches(msg, m.keys.Copy):
		text := sw.Format(engine.Elapsed())
		return func() tea.Msg { return app.CopyToClipboardMsg{Text: text} }
	}

	return nil
}

// SetSize sets the available size for the stopwatch tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Reset, m.keys.Copy}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Toggle, m.keys.Start, m.keys.Stop},
		{m.keys.Reset, m.keys.Copy},
	}
}
