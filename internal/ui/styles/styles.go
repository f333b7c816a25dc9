// Package styles defines the visual styling for the application.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/stopwatch-tui/internal/stopwatch"
)

// Color definitions for the stopwatch theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("205") // Pink
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(1, 2).
	MarginBottom(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// HelpStyle styles inline hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpKeyStyle styles the key part of a hint.
var HelpKeyStyle = lipgloss.NewStyle().
	Foreground(Secondary).
	Bold(true)

// HelpPanelStyle frames the help overlay.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Secondary).
	Padding(1, 2)

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary).
	BorderStyle(lipgloss.NormalBorder()).
	BorderBottom(true).
	BorderForeground(Subtle)

// TableCellStyle styles table cells.
var TableCellStyle = lipgloss.NewStyle().
	Foreground(TextPrimary)

// TableSelectedStyle styles the selected table row.
var TableSelectedStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// Status text styles.
var (
	ErrorTextStyle   = lipgloss.NewStyle().Foreground(Error)
	SuccessTextStyle = lipgloss.NewStyle().Foreground(Success)
	WarningTextStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoTextStyle    = lipgloss.NewStyle().Foreground(Info)
)

// Clock face colors per engine state.
var (
	ClockIdleStyle    = lipgloss.NewStyle().Foreground(TextMuted)
	ClockRunningStyle = lipgloss.NewStyle().Foreground(Success).Bold(true)
	ClockPausedStyle  = lipgloss.NewStyle().Foreground(Warning)
)

var badgeBase = lipgloss.NewStyle().
	Bold(true).
	Padding(0, 1).
	Foreground(lipgloss.Color("235"))

// State badge styles.
var (
	BadgeIdleStyle    = badgeBase.Background(Subtle)
	BadgeRunningStyle = badgeBase.Background(Success)
	BadgePausedStyle  = badgeBase.Background(Warning)
)

// GetClockStyle returns the clock face style for an engine state.
func GetClockStyle(s stopwatch.State) lipgloss.Style {
	switch s {
	case stopwatch.Running:
		return ClockRunningStyle
	case stopwatch.Paused:
		return ClockPausedStyle
	default:
		return ClockIdleStyle
	}
}

// GetBadgeStyle returns the badge style for an engine state.
func GetBadgeStyle(s stopwatch.State) lipgloss.Style {
	switch s {
	case stopwatch.Running:
		return BadgeRunningStyle
	case stopwatch.Paused:
		return BadgePausedStyle
	default:
		return BadgeIdleStyle
	}
}

// CenterHorizontal centers content horizontally within a given width.
func CenterHorizontal(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
