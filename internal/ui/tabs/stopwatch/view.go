package stopwatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	sw "github.com/j-veylop/stopwatch-tui/internal/stopwatch"
	"github.com/j-veylop/stopwatch-tui/internal/ui/components"
	"github.com/j-veylop/stopwatch-tui/internal/ui/styles"
)

var runningFrames = spinner.MiniDot

// View renders the stopwatch tab.
func (m *Model) View() string {
	engine := m.state.Engine()
	state := engine.State()
	elapsed := engine.Elapsed()

	sections := []string{
		m.renderHeader(state, elapsed),
		"",
		m.renderClock(state, elapsed),
		"",
		m.renderDetails(engine.Segments(), elapsed),
	}

	if stats := m.renderStats(); stats != "" {
		sections = append(sections, "", stats)
	}

	sections = append(sections, "", m.renderHints(state))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return styles.CenterBoth(content, m.width, m.height)
}

func (m *Model) renderHeader(state sw.State, elapsed time.Duration) string {
	badge := styles.GetBadgeStyle(state).Render(strings.ToUpper(state.String()))
	if state != sw.Running {
		return badge
	}
	return badge + " " + styles.SuccessTextStyle.Render(spinnerFrame(elapsed))
}

// spinnerFrame derives the frame from elapsed time so the spinner advances
// with the display tick instead of running its own.
func spinnerFrame(elapsed time.Duration) string {
	frames := runningFrames.Frames
	return frames[int(elapsed/runningFrames.FPS)%len(frames)]
}

func (m *Model) renderClock(state sw.State, elapsed time.Duration) string {
	text := sw.Format(elapsed)
	style := styles.GetClockStyle(state)

	if m.width > 0 && components.BigClockWidth(text) > m.width {
		return style.Render(text)
	}
	return style.Render(components.RenderBigClock(text))
}

func (m *Model) renderDetails(segments int, elapsed time.Duration) string {
	cfg := m.state.Config()

	parts := []string{fmt.Sprintf("Segments: %d", segments)}
	if cfg.MilestoneInterval > 0 {
		parts = append(parts, "Milestone every "+sw.Format(cfg.MilestoneInterval))
	}
	if cfg.TargetDuration > 0 {
		pct := min(float64(elapsed)/float64(cfg.TargetDuration)*100, 100)
		parts = append(parts, fmt.Sprintf("Target %s (%.0f%%)", sw.Format(cfg.TargetDuration), pct))
	}

	return styles.HelpStyle.Render(strings.Join(parts, "  •  "))
}

func (m *Model) renderStats() string {
	stats := m.state.GetStats()
	if !stats.HasData() {
		return ""
	}
	return styles.InfoTextStyle.Render(fmt.Sprintf(
		"%d sessions  •  total %s  •  best %s",
		stats.Count, sw.Format(stats.Total), sw.Format(stats.Longest),
	))
}

func (m *Model) renderHints(state sw.State) string {
	toggle := "start"
	if state == sw.Running {
		toggle = "stop"
	}

	hint := func(k, desc string) string {
		return styles.HelpKeyStyle.Render(k) + " " + styles.HelpStyle.Render(desc)
	}

	return strings.Join([]string{
		hint("space", toggle),
		hint("r", "reset"),
		hint("c", "copy"),
	}, styles.HelpStyle.Render("  •  "))
}
