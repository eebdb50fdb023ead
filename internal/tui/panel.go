package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tldv-downloader/tldv/internal/engine/types"
)

// RenderProgressPanel draws a snapshot as the live progress panel.
func (t *Theme) RenderProgressPanel(s types.Snapshot) string {
	title, status, accent := TitleDownloading, StatusActive, t.Active
	if s.Finished {
		title, status, accent = TitleComplete, StatusDone, t.Success
	}

	statusLabel := accent.Width(StatusWidth).Render(status)
	bar := t.renderBar(s, accent)
	pct := t.Value.Render(fmt.Sprintf("%5.1f%%", clampPercent(s.Percent)))
	barLine := statusLabel + "  " + bar + "  " + pct

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		t.statColumn("Elapsed", s.Elapsed, StatColumnWidth),
		t.statColumn("Speed", s.Speed, StatColumnWidth),
		t.statColumn("Download", s.Rate, RateColumnWidth),
		t.statColumn("ETA", s.ETA, StatColumnWidth),
		t.statColumn("Progress", s.PositionDisplay(), ProgressColumnWidth),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, "", barLine, "", stats)
	return t.RenderBox(title, content, PanelWidth, accent)
}

func (t *Theme) renderBar(s types.Snapshot, fill lipgloss.Style) string {
	filled := int(math.Floor(clampPercent(s.Percent) / 100 * types.BarWidth))
	if s.Finished {
		filled = types.BarWidth
	}
	return fill.Render(strings.Repeat("█", filled)) +
		t.Muted.Render(strings.Repeat("░", types.BarWidth-filled))
}

func (t *Theme) statColumn(label, value string, width int) string {
	col := t.style().Width(width)
	return lipgloss.JoinVertical(lipgloss.Left,
		col.Render(t.Label.Render(label)),
		col.Render(t.Value.Render(value)),
	)
}

// RenderBox wraps content in a heavy border with the title embedded in the
// top edge: ┏━ Title ━━━━━┓. Lines wider than the box are cut.
func (t *Theme) RenderBox(title, content string, width int, titleStyle lipgloss.Style) string {
	const (
		topLeft     = "┏"
		topRight    = "┓"
		bottomLeft  = "┗"
		bottomRight = "┛"
		horizontal  = "━"
		vertical    = "┃"
	)

	innerWidth := width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	border := t.style().Foreground(ColorBorder)

	titleText := fmt.Sprintf(" %s ", title)
	remaining := innerWidth - lipgloss.Width(titleText) - 1
	if remaining < 0 {
		remaining = 0
	}
	top := border.Render(topLeft+horizontal) +
		titleStyle.Render(titleText) +
		border.Render(strings.Repeat(horizontal, remaining)+topRight)
	bottom := border.Render(bottomLeft + strings.Repeat(horizontal, innerWidth) + bottomRight)

	cell := t.style().Width(innerWidth).MaxWidth(innerWidth).MaxHeight(1).PaddingLeft(DefaultPaddingX)
	lines := []string{top}
	for _, line := range strings.Split(content, "\n") {
		lines = append(lines, border.Render(vertical)+cell.Render(line)+border.Render(vertical))
	}
	lines = append(lines, bottom)
	return strings.Join(lines, "\n")
}

func clampPercent(p float64) float64 {
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
