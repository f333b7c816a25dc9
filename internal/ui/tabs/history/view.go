package history

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/stopwatch-tui/internal/models"
	sw "github.com/j-veylop/stopwatch-tui/internal/stopwatch"
	"github.com/j-veylop/stopwatch-tui/internal/ui/components"
	"github.com/j-veylop/stopwatch-tui/internal/ui/styles"
)

const (
	idWidth       = 8
	whenWidth     = 16
	elapsedWidth  = 12
	segmentsWidth = 8
	topSessions   = 5
	maxLabelWidth = 16
)

// View renders the history tab.
func (m *Model) View() string {
	if m.loading && m.sessions == nil {
		return m.renderLoading()
	}
	if m.errorMsg != "" {
		return m.renderError()
	}
	if len(m.sessions) == 0 {
		return m.renderEmpty()
	}

	sections := []string{
		m.renderHeader(),
		m.renderTable(),
		m.renderChart(),
	}
	if top := m.renderTopSessions(); top != "" {
		sections = append(sections, top)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderLoading() string {
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.spinner.ViewWithLabel())
}

func (m *Model) renderError() string {
	content := fmt.Sprintf("%s %s",
		styles.ErrorTextStyle.Render("Error:"),
		m.errorMsg,
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("History"),
		"",
		styles.HelpStyle.Render("No sessions recorded yet."),
		styles.HelpStyle.Render("A session is saved when a stopwatch with time on it is reset."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("History")

	summary := fmt.Sprintf("%d sessions  •  total %s  •  avg %s  •  best %s",
		m.stats.Count,
		sw.Format(m.stats.Total),
		sw.Format(m.stats.Average),
		sw.Format(m.stats.Longest),
	)

	spark := components.RenderSparkline(models.ElapsedSeries(m.sessions), 20)
	line := styles.InfoTextStyle.Render(summary) + "  " + styles.SuccessTextStyle.Render(spark)

	var subtitle string
	if !m.lastRefresh.IsZero() {
		subtitle = styles.HelpStyle.Render("Updated " + humanize.Time(m.lastRefresh))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, line, subtitle, "")
}

// visibleRange returns the window of rows that fits the tab height while
// keeping the selection on screen.
func (m *Model) visibleRange() (int, int) {
	rows := len(m.sessions)
	capacity := rows
	if m.height > 0 {
		// Header, table header, chart card and margins.
		capacity = max(m.height-22, 3)
	}
	if rows <= capacity {
		return 0, rows
	}

	start := max(m.selected-capacity/2, 0)
	start = min(start, rows-capacity)
	return start, start + capacity
}

func (m *Model) renderTable() string {
	header := fmt.Sprintf("  %-*s %-*s %*s %*s  %s",
		idWidth, "ID",
		whenWidth, "Recorded",
		elapsedWidth, "Elapsed",
		segmentsWidth, "Segments",
		"Label",
	)

	rows := []string{styles.TableHeaderStyle.Render(header)}

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(i, m.sessions[i]))
	}

	if start > 0 || end < len(m.sessions) {
		rows = append(rows, styles.HelpStyle.Render(
			fmt.Sprintf("  %d-%d of %d", start+1, end, len(m.sessions)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m *Model) renderRow(i int, s models.Session) string {
	label := s.Label
	if label == "" {
		label = "-"
	}

	line := fmt.Sprintf("%-*s %-*s %*s %*d  %s",
		idWidth, shortID(s.ID),
		whenWidth, humanize.Time(s.RecordedAt),
		elapsedWidth, sw.Format(s.Elapsed),
		segmentsWidth, s.Segments,
		label,
	)

	if i == m.selected {
		return styles.TableSelectedStyle.Render("▸ " + line)
	}
	return styles.TableCellStyle.Render("  " + line)
}

func (m *Model) renderChart() string {
	cardWidth := max(m.width-6, 40)
	chartWidth := max(cardWidth-12, 30)

	chart := components.RenderLineChart(
		models.ElapsedSeries(m.sessions),
		chartWidth, 6,
		fmt.Sprintf("Last %d sessions (seconds)", len(m.sessions)),
	)

	rows := []string{styles.CardTitleStyle.Render("Durations")}
	for line := range strings.SplitSeq(chart, "\n") {
		rows = append(rows, "  "+line)
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderTopSessions charts the longest loaded sessions.
func (m *Model) renderTopSessions() string {
	if len(m.sessions) < 2 {
		return ""
	}

	top := slices.Clone(m.sessions)
	slices.SortStableFunc(top, func(a, b models.Session) int {
		return cmp.Compare(b.Elapsed, a.Elapsed)
	})
	top = top[:min(len(top), topSessions)]

	values := make([]float64, len(top))
	labels := make([]string, len(top))
	for i, s := range top {
		values[i] = s.Elapsed.Seconds()
		labels[i] = ansi.Truncate(s.Label, maxLabelWidth, "…")
		if labels[i] == "" {
			labels[i] = shortID(s.ID)
		}
	}

	cardWidth := max(m.width-6, 40)
	chart := components.RenderBarChart(values, labels, cardWidth-4, func(v float64) string {
		return sw.Format(secondsToDuration(v))
	})

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitleStyle.Render("Longest"),
			chart,
		),
	)
}

func shortID(id string) string {
	if len(id) <= idWidth {
		return id
	}
	return id[:idWidth]
}

func secondsToDuration(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
