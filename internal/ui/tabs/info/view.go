package info

import (
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/stopwatch-tui/internal/ui/styles"
	"github.com/j-veylop/stopwatch-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

func (m *Model) renderConfigCard() string {
	cfg := m.state.Config()

	envFile := cfg.EnvFile
	if envFile == "" {
		envFile = "none (environment only)"
	}
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = "disabled"
	}

	rows := []string{
		styles.CardTitleStyle.Render("Configuration"),
		"",
		m.renderConfigRow("Database", cfg.DatabasePath),
		m.renderConfigRow("Env File", envFile),
		m.renderConfigRow("Log File", logFile),
		m.renderConfigRow("Log Level", cfg.LogLevel),
		m.renderConfigRow("Refresh", cfg.RefreshInterval.String()),
		m.renderConfigRow("Milestone", durationOrOff(cfg.MilestoneInterval)),
		m.renderConfigRow("Target", durationOrOff(cfg.TargetDuration)),
		m.renderConfigRow("Notifications", onOff(cfg.NotificationsEnabled)),
		m.renderConfigRow("History Limit", strconv.Itoa(cfg.HistoryLimit)),
		"",
		styles.HelpStyle.Render("Press 'c' to copy the database path"),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About Stopwatch TUI"),
		"",
		m.renderConfigRow("Version", version.GetVersion()),
		m.renderConfigRow("Build Date", version.GetDate()),
		m.renderConfigRow("Git Commit", version.GetCommit()),
		m.renderConfigRow("Go Version", runtime.Version()),
		m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
		"",
		fmt.Sprintf("Sessions: %s", styles.InfoTextStyle.Render(strconv.Itoa(m.state.GetStats().Count))),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func durationOrOff(d time.Duration) string {
	if d <= 0 {
		return "off"
	}
	return d.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
