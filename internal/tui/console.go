package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/tldv-downloader/tldv/internal/utils"
)

// MeetingCard is the information shown before a download starts.
type MeetingCard struct {
	Name     string
	Date     string
	Duration string
	ID       string
	Output   string
}

// FileEntry is one row of the completion summary.
type FileEntry struct {
	Kind string
	Path string
	Size int64
}

// Console is the output sink for everything the CLI prints.
type Console struct {
	w     io.Writer
	out   *termenv.Output
	Theme *Theme

	// Interactive is true when w is a terminal that supports styling and
	// cursor movement.
	Interactive bool
}

// NewConsole creates a console writing to w, detecting its capabilities.
func NewConsole(w io.Writer) *Console {
	out := termenv.NewOutput(w)
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(out.Profile)
	return &Console{
		w:           w,
		out:         out,
		Theme:       NewTheme(r),
		Interactive: out.Profile != termenv.Ascii,
	}
}

// Live returns a display for the download progress panel.
func (c *Console) Live() *LiveDisplay {
	d := NewLiveDisplay(c.out, c.Theme)
	d.Interactive = c.Interactive
	return d
}

// Spin runs fn behind a spinner.
func (c *Console) Spin(ctx context.Context, label string, fn func(context.Context) error) error {
	return RunWithSpinner(ctx, c.w, c.Theme, c.Interactive, label, fn)
}

// Step prints a numbered pipeline step header.
func (c *Console) Step(n, total int, msg string) {
	fmt.Fprintf(c.w, "\n%s %s\n", c.Theme.Accent.Render(fmt.Sprintf("[%d/%d]", n, total)), c.Theme.Text.Render(msg))
}

// Success prints a ✓ line.
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintf(c.w, "  %s %s\n", c.Theme.Success.Render("✓"), fmt.Sprintf(format, args...))
}

// Warn prints a ! line.
func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintf(c.w, "  %s %s\n", c.Theme.Warning.Render("!"), fmt.Sprintf(format, args...))
}

// Info prints a muted line.
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintf(c.w, "  %s\n", c.Theme.Muted.Render(fmt.Sprintf(format, args...)))
}

// MeetingInfo prints the meeting card.
func (c *Console) MeetingInfo(m MeetingCard) {
	rows := []string{
		c.row("Name", m.Name),
		c.row("Date", m.Date),
		c.row("Duration", m.Duration),
		c.row("ID", m.ID),
		c.row("Output", m.Output),
	}
	fmt.Fprintln(c.w, c.Theme.RenderBox("Meeting", strings.Join(rows, "\n"), PanelWidth, c.Theme.Accent))
}

// Summary prints the completion panel listing the written files.
func (c *Console) Summary(files []FileEntry, elapsed time.Duration) {
	kind := c.Theme.style().Width(CardLabelWidth + 2)
	size := c.Theme.style().Width(12).Align(lipgloss.Right)

	var rows []string
	for _, f := range files {
		rows = append(rows, kind.Render(c.Theme.Label.Render(f.Kind))+
			size.Render(c.Theme.Value.Render(humanize.IBytes(uint64(max(f.Size, 0)))))+"  "+
			c.Theme.Text.Render(f.Path))
	}
	rows = append(rows, "", c.Theme.Muted.Render("Finished in "+utils.FormatDuration(elapsed.Seconds())))
	fmt.Fprintln(c.w, c.Theme.RenderBox(TitleComplete, strings.Join(rows, "\n"), PanelWidth, c.Theme.Success))
}

// ErrorPanel prints a failure box.
func (c *Console) ErrorPanel(title, msg string) {
	fmt.Fprintln(c.w, c.Theme.RenderBox(title, c.Theme.Error.Render(msg), PanelWidth, c.Theme.Error))
}

func (c *Console) row(label, value string) string {
	return c.Theme.style().Width(CardLabelWidth).Render(c.Theme.Label.Render(label)) + c.Theme.Text.Render(value)
}
