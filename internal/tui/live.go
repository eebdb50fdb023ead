package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/tldv-downloader/tldv/internal/engine/types"
)

// LiveDisplay redraws the progress panel in place. On terminals that cannot
// move the cursor it stays quiet and prints only the completed panel.
type LiveDisplay struct {
	out   *termenv.Output
	theme *Theme

	// Interactive enables in-place redraws.
	Interactive bool
	// Transient erases the panel when the display closes.
	Transient bool

	lines int
	last  *types.Snapshot
}

// NewLiveDisplay creates a transient live display writing to out.
func NewLiveDisplay(out *termenv.Output, theme *Theme) *LiveDisplay {
	return &LiveDisplay{
		out:         out,
		theme:       theme,
		Interactive: out.Profile != termenv.Ascii,
		Transient:   true,
	}
}

// Show draws s, replacing the previous frame.
func (d *LiveDisplay) Show(s types.Snapshot) {
	d.last = &s
	if !d.Interactive {
		return
	}
	if d.lines == 0 {
		d.out.HideCursor()
	} else {
		d.out.CursorPrevLine(d.lines)
	}

	frame := strings.Split(d.theme.RenderProgressPanel(s), "\n")
	for _, line := range frame {
		d.out.ClearLine()
		fmt.Fprintln(d.out, line)
	}
	d.lines = len(frame)
}

// Close ends the live session.
func (d *LiveDisplay) Close() {
	if !d.Interactive {
		if d.last != nil && d.last.Finished && !d.Transient {
			fmt.Fprintln(d.out, d.theme.RenderProgressPanel(*d.last))
		}
		return
	}
	if d.lines > 0 && d.Transient {
		d.out.CursorPrevLine(d.lines)
		fmt.Fprintf(d.out, termenv.CSI+termenv.EraseDisplaySeq, 0)
	}
	d.out.ShowCursor()
	d.lines = 0
}
