package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/stopwatch-tui/internal/config"
	"github.com/j-veylop/stopwatch-tui/internal/models"
	"github.com/j-veylop/stopwatch-tui/internal/services"
	"github.com/j-veylop/stopwatch-tui/internal/services/alerts"
	"github.com/j-veylop/stopwatch-tui/internal/stopwatch"
)

func newTestModel(t *testing.T, mgr *services.Manager) (*Model, *stopwatch.ManualClock) {
	t.Helper()
	clock := stopwatch.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	state := NewState(stopwatch.New(clock), &config.Config{
		RefreshInterval:      10 * time.Millisecond,
		MilestoneInterval:    time.Second,
		NotificationsEnabled: true,
	})
	return NewModel(mgr, state), clock
}

// recordingTab is a minimal Tab that remembers the messages it received.
type recordingTab struct {
	received []tea.Msg
	width    int
	height   int
}

func (r *recordingTab) Init() tea.Cmd { return nil }

func (r *recordingTab) Update(msg tea.Msg) (Tab, tea.Cmd) {
	r.received = append(r.received, msg)
	return r, nil
}

func (r *recordingTab) View() string {
	return strings.TrimSuffix(strings.Repeat("recording tab\n", max(r.height, 1)), "\n")
}

func (r *recordingTab) SetSize(width, height int) {
	r.width, r.height = width, height
}

func (r *recordingTab) ShortHelp() []key.Binding {
	return []key.Binding{key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zap"))}
}

func (r *recordingTab) FullHelp() [][]key.Binding { return nil }

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModel(t *testing.T) {
	model := NewModel(nil, nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabStopwatch {
		t.Error("Default tab should be Stopwatch")
	}
	if len(model.tabs) != 3 {
		t.Errorf("Should have 3 tab slots, got %d", len(model.tabs))
	}
	if model.commands == nil || model.GetServices() != nil {
		t.Error("accessors should reflect construction")
	}
}

func TestModel_Init(t *testing.T) {
	model, _ := newTestModel(t, nil)
	if model.Init() == nil {
		t.Error("Init returned nil command")
	}
	if model.state.IsInitialLoading() {
		t.Error("without services there is nothing to load")
	}
}

func TestModel_Init_WithServices(t *testing.T) {
	model, _ := newTestModel(t, newTestManager(t))
	model.Init()

	notifications := model.state.GetNotifications()
	if len(notifications) != 1 || notifications[0].Type != NotificationLoading {
		t.Errorf("expected a loading notification, got %+v", notifications)
	}

	model.Update(StatsLoadedMsg{})
	if model.state.IsInitialLoading() || len(model.state.GetNotifications()) != 0 {
		t.Error("stats load should clear the initial loading state")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model, _ := newTestModel(t, nil)
	tab := &recordingTab{}
	model.SetTabs([]Tab{tab, nil, nil})

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m := newModel.(*Model)

	if m.width != 100 || m.height != 50 {
		t.Errorf("size = %dx%d, want 100x50", m.width, m.height)
	}
	if !m.IsReady() {
		t.Error("Model should be ready after WindowSizeMsg")
	}
	if tab.width != 100 || tab.height != 45 {
		t.Errorf("tab size = %dx%d, want 100x45", tab.width, tab.height)
	}
}

func TestModel_Update_TabSwitch(t *testing.T) {
	model, _ := newTestModel(t, nil)

	model.Update(keyRune('2'))
	if model.GetActiveTab() != TabHistory {
		t.Errorf("ActiveTab = %v, want History", model.GetActiveTab())
	}

	model.Update(keyRune('3'))
	if model.GetActiveTab() != TabInfo {
		t.Errorf("ActiveTab = %v, want Info", model.GetActiveTab())
	}

	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.GetActiveTab() != TabStopwatch {
		t.Errorf("tab should wrap to Stopwatch, got %v", model.GetActiveTab())
	}

	model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if model.GetActiveTab() != TabInfo {
		t.Errorf("shift+tab should wrap to Info, got %v", model.GetActiveTab())
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model, _ := newTestModel(t, nil)
	model.state.AddNotification(NotificationInfo, "old", time.Nanosecond)
	time.Sleep(time.Millisecond)

	_, cmd := model.Update(TickMsg{Time: time.Now()})
	if cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
	if len(model.state.GetNotifications()) != 0 {
		t.Error("TickMsg should clear expired notifications")
	}
}

func TestModel_Quit(t *testing.T) {
	model, _ := newTestModel(t, nil)
	_, cmd := model.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModel_View(t *testing.T) {
	model, _ := newTestModel(t, nil)

	if view := model.View(); !strings.Contains(view, "Loading...") {
		t.Error("View should show Loading when not ready")
	}

	model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := model.View()
	if !strings.Contains(view, "Stopwatch") {
		t.Error("View should show the Stopwatch tab")
	}
	if !strings.Contains(view, "not available") {
		t.Error("View should show placeholder text")
	}

	model.SetTabs([]Tab{&recordingTab{}, nil, nil})
	if view := model.View(); !strings.Contains(view, "recording tab") {
		t.Error("View should render the active tab")
	}
}

func TestModel_Help(t *testing.T) {
	model, _ := newTestModel(t, nil)
	model.SetTabs([]Tab{&recordingTab{}, nil, nil})
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	model.Update(keyRune('?'))
	if !model.showHelp {
		t.Fatal("? should open help")
	}

	view := model.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("help overlay should be rendered")
	}
	if !strings.Contains(view, "zap") {
		t.Error("help should list the active tab's bindings")
	}

	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.GetActiveTab() != TabStopwatch {
		t.Error("tab should not switch while help is open")
	}

	model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.showHelp {
		t.Error("esc should close help")
	}
}

func TestModel_Notifications(t *testing.T) {
	model, _ := newTestModel(t, nil)
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	_, cmd := model.Update(AddNotificationMsg{
		Type:     NotificationSuccess,
		Message:  "Saved",
		Duration: time.Minute,
	})
	if cmd == nil {
		t.Error("timed notification should schedule its removal")
	}

	notifications := model.state.GetNotifications()
	if len(notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifications))
	}
	if !strings.Contains(model.View(), "[OK] Saved") {
		t.Error("View should render the toast")
	}

	model.Update(RemoveNotificationMsg{ID: notifications[0].ID})
	if len(model.state.GetNotifications()) != 0 {
		t.Error("RemoveNotificationMsg should remove the toast")
	}
}

func TestModel_StopwatchStarted_SchedulesDisplayTick(t *testing.T) {
	model, _ := newTestModel(t, nil)
	engine := model.state.Engine()

	_, cmd := model.Update(ApplyControl(engine, engine.Start)())
	if cmd == nil {
		t.Fatal("starting should schedule a display tick")
	}
	if model.tickID != 1 {
		t.Errorf("tickID = %d, want 1", model.tickID)
	}
}

func TestModel_DisplayTick(t *testing.T) {
	model, _ := newTestModel(t, nil)
	engine := model.state.Engine()

	if cmds := model.handleDisplayTick(DisplayTickMsg{ID: model.tickID}); cmds != nil {
		t.Error("ticks while idle should stop the chain")
	}

	model.Update(ApplyControl(engine, engine.Start)())
	if cmds := model.handleDisplayTick(DisplayTickMsg{ID: model.tickID - 1}); cmds != nil {
		t.Error("stale ticks should be dropped")
	}
	if cmds := model.handleDisplayTick(DisplayTickMsg{ID: model.tickID}); len(cmds) != 1 {
		t.Errorf("current tick should reschedule, got %d commands", len(cmds))
	}

	// Restarting invalidates the previous chain.
	old := model.tickID
	engine.Stop()
	model.Update(ApplyControl(engine, engine.Start)())
	if cmds := model.handleDisplayTick(DisplayTickMsg{ID: old}); cmds != nil {
		t.Error("ticks from a previous run should be dropped")
	}
}

func TestModel_Alerts(t *testing.T) {
	model, clock := newTestModel(t, nil)
	engine := model.state.Engine()

	var delivered []alerts.Alert
	model.SetAlertNotifier(func(a alerts.Alert) error {
		delivered = append(delivered, a)
		return nil
	})

	model.Update(ApplyControl(engine, engine.Start)())
	clock.Advance(1500 * time.Millisecond)

	cmds := model.handleDisplayTick(DisplayTickMsg{ID: model.tickID})
	// send, toast, next tick
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3", len(cmds))
	}
	if _, ok := cmds[0]().(AlertsSentMsg); !ok {
		t.Fatal("first command should deliver alerts")
	}
	if len(delivered) != 1 || delivered[0].Kind != alerts.KindMilestone {
		t.Errorf("delivered = %+v, want one milestone", delivered)
	}

	if cmds := model.checkAlerts(1900 * time.Millisecond); cmds != nil {
		t.Error("a milestone should fire once")
	}

	// Reset re-arms the thresholds.
	model.Update(ApplyControl(engine, engine.Reset)())
	if cmds := model.checkAlerts(time.Second); cmds == nil {
		t.Error("milestones should fire again after reset")
	}
}

func TestModel_StopChecksAlerts(t *testing.T) {
	model, clock := newTestModel(t, nil)
	engine := model.state.Engine()
	model.SetAlertNotifier(func(alerts.Alert) error { return nil })

	model.Update(ApplyControl(engine, engine.Start)())
	clock.Advance(1200 * time.Millisecond)

	cmds := model.handleStopwatchChanged(ApplyControl(engine, engine.Stop)().(StopwatchChangedMsg))
	if len(cmds) != 2 {
		t.Errorf("stop past a milestone should alert, got %d commands", len(cmds))
	}
}

func TestModel_ResetRecordsSession(t *testing.T) {
	mgr := newTestManager(t)
	model, clock := newTestModel(t, mgr)
	engine := model.state.Engine()

	engine.Start()
	clock.Advance(2 * time.Second)
	engine.Stop()

	cmds := model.handleStopwatchChanged(ApplyControl(engine, engine.Reset)().(StopwatchChangedMsg))
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}

	msg, ok := cmds[0]().(SessionRecordedMsg)
	if !ok {
		t.Fatal("reset should record the session")
	}
	if msg.Error != nil || msg.Session.Elapsed != 2*time.Second {
		t.Errorf("recorded %+v (err %v)", msg.Session, msg.Error)
	}

	notify, ok := model.handleSessionRecorded(msg)().(AddNotificationMsg)
	if !ok || !strings.Contains(notify.Message, "00:00:02.00") {
		t.Errorf("notification = %+v", notify)
	}
}

func TestModel_SessionRecordedError(t *testing.T) {
	model, _ := newTestModel(t, nil)

	msg := model.handleSessionRecorded(SessionRecordedMsg{Error: errors.New("disk full")})().(AddNotificationMsg)
	if msg.Type != NotificationError {
		t.Errorf("Type = %v, want error", msg.Type)
	}
	if model.handleSessionRecorded(SessionRecordedMsg{}) != nil {
		t.Error("nothing recorded should not notify")
	}
}

func TestModel_Finish(t *testing.T) {
	mgr := newTestManager(t)
	model, clock := newTestModel(t, mgr)
	engine := model.state.Engine()

	engine.Start()
	clock.Advance(3 * time.Second)

	session, err := model.Finish()
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if session == nil || session.Elapsed != 3*time.Second {
		t.Fatalf("session = %+v, want 3s", session)
	}
	if engine.Running() {
		t.Error("Finish should stop the engine")
	}
}

func TestModel_Finish_Nothing(t *testing.T) {
	model, _ := newTestModel(t, newTestManager(t))
	session, err := model.Finish()
	if session != nil || err != nil {
		t.Errorf("Finish on idle = %v, %v", session, err)
	}
}

func TestModel_Clipboard(t *testing.T) {
	model, _ := newTestModel(t, nil)

	msg := model.handleClipboardResult(ClipboardResultMsg{Text: "00:00:01.00"})().(AddNotificationMsg)
	if msg.Type != NotificationInfo || !strings.Contains(msg.Message, "00:00:01.00") {
		t.Errorf("notification = %+v", msg)
	}

	msg = model.handleClipboardResult(ClipboardResultMsg{Error: errors.New("no display")})().(AddNotificationMsg)
	if msg.Type != NotificationError {
		t.Errorf("Type = %v, want error", msg.Type)
	}
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model, _ := newTestModel(t, nil)

	cmd := model.handleServiceEvent(services.SessionRecordedEvent{Session: models.Session{ID: "a"}})
	if _, ok := cmd().(SessionsChangedMsg); !ok {
		t.Error("recorded session should announce SessionsChangedMsg")
	}

	cmd = model.handleServiceEvent(services.SessionDeletedEvent{ID: "a"})
	if _, ok := cmd().(SessionsChangedMsg); !ok {
		t.Error("deleted session should announce SessionsChangedMsg")
	}

	if cmd := model.handleServiceEvent(services.StatsEvent{Stats: models.SessionStats{Count: 4}}); cmd != nil {
		t.Error("stats event should not return a command")
	}
	if model.state.GetStats().Count != 4 {
		t.Error("stats event should update state")
	}

	msg := model.handleServiceEvent(services.ErrorEvent{Service: "history", Error: errors.New("x")})().(AddNotificationMsg)
	if msg.Type != NotificationError || !strings.Contains(msg.Message, "[history]") {
		t.Errorf("notification = %+v", msg)
	}
}

func TestModel_SettingsChanged(t *testing.T) {
	model, _ := newTestModel(t, nil)
	cfg := &config.Config{RefreshInterval: 50 * time.Millisecond, HistoryLimit: 5}

	if model.handleServiceEvent(services.SettingsChangedEvent{}) != nil {
		t.Error("nil config should be ignored")
	}
	if cmd := model.handleServiceEvent(services.SettingsChangedEvent{Config: cfg}); cmd == nil {
		t.Fatal("settings change should return commands")
	}
	if model.state.Config().HistoryLimit != 5 {
		t.Error("state should hold the new config")
	}
	if model.refreshInterval() != 50*time.Millisecond {
		t.Errorf("refreshInterval = %v, want 50ms", model.refreshInterval())
	}
	if model.tracker.Enabled() {
		t.Error("tracker should follow the new config")
	}
}

func TestModel_BroadcastsToAllTabs(t *testing.T) {
	model, _ := newTestModel(t, nil)
	a, b := &recordingTab{}, &recordingTab{}
	model.SetTabs([]Tab{a, b, nil})

	model.Update(SessionsChangedMsg{})

	if len(a.received) != 1 || len(b.received) != 1 {
		t.Errorf("received = %d/%d, want 1/1", len(a.received), len(b.received))
	}

	model.Update(ErrorMsg{Error: errors.New("x")})
	if len(a.received) != 2 || len(b.received) != 1 {
		t.Error("messages the root handles should only reach the active tab")
	}
}

// tabResultMsg stands in for the private result of a tab's own command.
type tabResultMsg struct{}

func TestModel_TabResultsReachHiddenTabs(t *testing.T) {
	model, _ := newTestModel(t, nil)
	visible, hidden := &recordingTab{}, &recordingTab{}
	model.SetTabs([]Tab{visible, hidden, nil})

	model.Update(tabResultMsg{})
	if len(hidden.received) != 1 {
		t.Fatalf("hidden tab received %d messages, want 1", len(hidden.received))
	}
	if _, ok := hidden.received[0].(tabResultMsg); !ok {
		t.Errorf("hidden tab got %T", hidden.received[0])
	}
	if len(visible.received) != 1 {
		t.Errorf("visible tab received %d messages, want 1", len(visible.received))
	}

	model.Update(spinner.TickMsg{ID: -1})
	if len(hidden.received) != 2 {
		t.Error("spinner ticks should reach hidden tabs")
	}

	model.Update(keyRune('x'))
	if len(hidden.received) != 2 {
		t.Error("keys should only reach the active tab")
	}
}

func TestModel_LoadingMessages(t *testing.T) {
	model, _ := newTestModel(t, nil)
	model.Init()

	model.Update(StartLoadingMsg{Resource: "sessions"})
	notifications := model.state.GetNotifications()
	if len(notifications) != 1 || notifications[0].Type != NotificationLoading ||
		!strings.Contains(notifications[0].Message, "sessions") {
		t.Fatalf("notifications = %+v", notifications)
	}

	model.Update(StopLoadingMsg{Resource: "sessions"})
	if model.state.AnyLoading() || len(model.state.GetNotifications()) != 0 {
		t.Error("stop should clear the loading toast")
	}
}

func TestModel_SettingsChanged_KeepsDatabasePath(t *testing.T) {
	model, _ := newTestModel(t, nil)
	model.state.SetConfig(&config.Config{DatabasePath: "/data/sessions.db", HistoryLimit: 50})

	reloaded := &config.Config{DatabasePath: "/elsewhere.db", HistoryLimit: 7}
	cmd := model.handleServiceEvent(services.SettingsChangedEvent{Config: reloaded})
	if cmd == nil {
		t.Fatal("settings change should return commands")
	}

	cfg := model.state.Config()
	if cfg.DatabasePath != "/data/sessions.db" {
		t.Errorf("DatabasePath = %q, want the open database", cfg.DatabasePath)
	}
	if cfg.HistoryLimit != 7 {
		t.Errorf("HistoryLimit = %d, want 7", cfg.HistoryLimit)
	}
	if reloaded.DatabasePath != "/elsewhere.db" {
		t.Error("the reloaded config should not be mutated")
	}

	var warned bool
	for _, c := range cmd().(tea.BatchMsg) {
		if n, ok := c().(AddNotificationMsg); ok && n.Type == NotificationWarning {
			warned = strings.Contains(n.Message, "restart")
		}
	}
	if !warned {
		t.Error("a changed database path should warn that a restart is needed")
	}
}

func TestModel_ServiceEventLoop(t *testing.T) {
	model, _ := newTestModel(t, nil)
	ch := make(chan services.ServiceEvent, 1)

	_, cmd := model.Update(SubscriptionEventMsg{Channel: ch})
	if cmd == nil || model.eventChannel != ch {
		t.Fatal("subscription should start waiting for events")
	}

	cmds := model.handleServiceEventMsg(ServiceEventMsg{Event: services.StatsEvent{}})
	if len(cmds) != 1 {
		t.Errorf("got %d commands, want only the next wait", len(cmds))
	}
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model, _ := newTestModel(t, nil)
	_, cmd := model.Update(spinner.TickMsg{ID: model.spinner.ID()})
	if cmd == nil {
		t.Error("spinner tick should schedule the next frame")
	}
}

func TestTabID_String(t *testing.T) {
	tests := []struct {
		id   TabID
		want string
	}{
		{TabStopwatch, "Stopwatch"},
		{TabHistory, "History"},
		{TabInfo, "Info"},
		{TabID(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("TabID(%d).String() = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 || len(km.FullHelp()) == 0 {
		t.Error("keymap help should not be empty")
	}
	if !key.Matches(keyRune('q'), km.Quit) {
		t.Error("q should quit")
	}
}

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()
	if s.ActiveTab.Render("x") == "" {
		t.Error("styles should render")
	}
}
