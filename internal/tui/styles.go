package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary = lipgloss.Color("#bd93f9") // Dracula Purple
	ColorInfo    = lipgloss.Color("#8be9fd") // Dracula Cyan
	ColorActive  = lipgloss.Color("#6c9ef8") // Blue
	ColorSuccess = lipgloss.Color("#50fa7b") // Dracula Green
	ColorError   = lipgloss.Color("#ff5555") // Dracula Red
	ColorWarning = lipgloss.Color("#ffb86c") // Dracula Orange
	ColorText    = lipgloss.Color("#f8f8f2") // Dracula Foreground
	ColorSubtext = lipgloss.Color("#6272a4") // Dracula Comment
	ColorBorder  = lipgloss.Color("#44475a") // Dracula Selection
)

// Theme holds the styles bound to one renderer, so output written to a
// pipe or a test buffer degrades to plain text.
type Theme struct {
	renderer *lipgloss.Renderer

	Text    lipgloss.Style
	Muted   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Accent  lipgloss.Style
	Active  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewTheme builds the style set for r.
func NewTheme(r *lipgloss.Renderer) *Theme {
	fg := func(c lipgloss.TerminalColor) lipgloss.Style {
		return r.NewStyle().Foreground(c)
	}
	return &Theme{
		renderer: r,
		Text:     fg(ColorText),
		Muted:    fg(ColorSubtext),
		Label:    fg(ColorSubtext).Bold(true),
		Value:    fg(ColorText).Bold(true),
		Accent:   fg(ColorPrimary).Bold(true),
		Active:   fg(ColorActive).Bold(true),
		Success:  fg(ColorSuccess).Bold(true),
		Warning:  fg(ColorWarning).Bold(true),
		Error:    fg(ColorError).Bold(true),
	}
}

func (t *Theme) style() lipgloss.Style {
	return t.renderer.NewStyle()
}
