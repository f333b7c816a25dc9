// Package history provides the history tab for browsing recorded sessions.
package history

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/stopwatch-tui/internal/app"
	"github.com/j-veylop/stopwatch-tui/internal/models"
	"github.com/j-veylop/stopwatch-tui/internal/services"
	"github.com/j-veylop/stopwatch-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the history tab.
type keyMap struct {
	Refresh key.Binding
	Delete  key.Binding
	CopyID  key.Binding
	Up      key.Binding
	Down    key.Binding
}

// defaultKeyMap returns the default key bindings for the history tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		CopyID: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy id"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// sessionsLoadedMsg is sent when the recent sessions are loaded.
type sessionsLoadedMsg struct {
	sessions []models.Session
	stats    models.SessionStats
}

// historyErrorMsg is sent when there's an error loading history.
type historyErrorMsg struct {
	err string
}

// sessionDeletedMsg reports the outcome of a delete request.
type sessionDeletedMsg struct {
	err error
	id  string
}

// Model represents the history tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	commands *app.Commands
	keys     keyMap
	spinner  components.LoadingSpinner

	sessions    []models.Session
	stats       models.SessionStats
	lastRefresh time.Time
	errorMsg    string
	selected    int
	width       int
	height      int
	loading     bool
	// stale marks a change that arrived while a load was in flight.
	stale bool
}

// New creates a new history model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		commands: app.NewCommands(svc),
		keys:     defaultKeyMap(),
		spinner:  components.NewSpinner("Loading sessions..."),
	}
}

// Init initializes the history tab.
func (m *Model) Init() tea.Cmd {
	return m.reload()
}

// loadingResource names the history load in the app's loading toast.
const loadingResource = "sessions"

func (m *Model) reload() tea.Cmd {
	m.loading = true
	return tea.Batch(
		func() tea.Msg { return app.StartLoadingMsg{Resource: loadingResource} },
		m.loadHistoryCmd(),
		m.spinner.Tick(),
	)
}

func stopLoading() tea.Msg {
	return app.StopLoadingMsg{Resource: loadingResource}
}

// loadHistoryCmd creates a command to load the recent sessions and totals.
func (m *Model) loadHistoryCmd() tea.Cmd {
	svc := m.services
	limit := m.state.Config().HistoryLimit
	return func() tea.Msg {
		if svc == nil {
			return historyErrorMsg{err: "Services not initialized"}
		}

		sessions, err := svc.RecentSessions(limit)
		if err != nil {
			return historyErrorMsg{err: err.Error()}
		}
		stats, err := svc.GetStats()
		if err != nil {
			return historyErrorMsg{err: err.Error()}
		}
		return sessionsLoadedMsg{sessions: sessions, stats: stats}
	}
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	svc := m.services
	return func() tea.Msg {
		if svc == nil {
			return sessionDeletedMsg{id: id, err: fmt.Errorf("services not initialized")}
		}
		return sessionDeletedMsg{id: id, err: svc.DeleteSession(id)}
	}
}

// Update handles messages for the history tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		m.sessions = msg.sessions
		m.stats = msg.stats
		m.loading = false
		m.lastRefresh = time.Now()
		m.errorMsg = ""
		m.clampSelection()
		cmds = append(cmds, stopLoading)
		if m.stale {
			m.stale = false
			cmds = append(cmds, m.reload())
		}

	case historyErrorMsg:
		m.loading = false
		m.errorMsg = msg.err
		cmds = append(cmds, stopLoading, m.commands.NotifyError("History error: "+msg.err))

	case sessionDeletedMsg:
		if msg.err != nil {
			err := msg.err
			cmds = append(cmds, func() tea.Msg {
				return app.ErrorMsg{Error: err, Context: "Delete session"}
			})
			break
		}
		cmds = append(cmds, m.commands.NotifySuccess("Deleted session "+shortID(msg.id)))

	case app.SessionsChangedMsg, app.SettingsChangedMsg:
		if m.loading {
			m.stale = true
		} else {
			cmds = append(cmds, m.reload())
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	default:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		if !m.loading {
			return m, m.reload()
		}

	case key.Matches(msg, m.keys.Up):
		m.selected--
		m.clampSelection()

	case key.Matches(msg, m.keys.Down):
		m.selected++
		m.clampSelection()

	case key.Matches(msg, m.keys.Delete):
		if s, ok := m.selectedSession(); ok {
			return m, m.deleteCmd(s.ID)
		}

	case key.Matches(msg, m.keys.CopyID):
		if s, ok := m.selectedSession(); ok {
			id := s.ID
			return m, func() tea.Msg { return app.CopyToClipboardMsg{Text: id} }
		}
	}
	return m, nil
}

func (m *Model) selectedSession() (models.Session, bool) {
	if m.selected < 0 || m.selected >= len(m.sessions) {
		return models.Session{}, false
	}
	return m.sessions[m.selected], true
}

func (m *Model) clampSelection() {
	m.selected = min(max(m.selected, 0), max(len(m.sessions)-1, 0))
}

// SetSize sets the available size for the history tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Refresh,
		m.keys.Delete,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Refresh, m.keys.Delete, m.keys.CopyID},
		{m.keys.Up, m.keys.Down},
	}
}
