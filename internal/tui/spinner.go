package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldv-downloader/tldv/internal/utils"
)

type taskDoneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newSpinnerModel(theme *Theme, label string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Spinner{
		Frames: spinner.Dot.Frames,
		FPS:    SpinnerInterval,
	}))
	s.Style = theme.Accent
	return spinnerModel{spinner: s, label: label}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.label
}

// RunWithSpinner runs fn while a spinner labelled label animates on w.
// The spinner is skipped when interactive is false; fn runs either way
// and its error is returned.
func RunWithSpinner(ctx context.Context, w io.Writer, theme *Theme, interactive bool, label string, fn func(context.Context) error) error {
	if !interactive {
		return fn(ctx)
	}

	p := tea.NewProgram(newSpinnerModel(theme, label),
		tea.WithContext(ctx),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	result := make(chan error, 1)
	go func() {
		result <- fn(ctx)
		p.Send(taskDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		utils.Debug("spinner stopped: %v", err)
	}
	return <-result
}
