package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/tldv-downloader/tldv/internal/engine/types"
	"github.com/tldv-downloader/tldv/internal/utils"
)

// State is the phase of a running download
type State int

const (
	StateStarting State = iota
	StateStreaming
	StateDraining
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateStreaming:
		return "streaming"
	case StateDraining:
		return "draining"
	case StateFinished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Display receives snapshots to render. Close ends the live session.
type Display interface {
	Show(types.Snapshot)
	Close()
}

// Job describes one stream copy.
type Job struct {
	Source        string
	Output        string
	TotalDuration float64 // seconds, 0 if unknown
}

// Result is what a finished run reports back to the caller.
type Result struct {
	ExitCode int
	Final    types.Snapshot
	Elapsed  time.Duration
	Size     int64 // output file size on disk, 0 if missing
}

// Downloader supervises an ffmpeg stream copy and renders its progress.
type Downloader struct {
	FFmpegPath  string
	Display     Display
	RefreshRate float64       // redraws per second
	HoldFinal   time.Duration // how long the completed panel stays up
	Overwrite   bool

	// Now defaults to time.Now
	Now func() time.Time
	// OnState, if set, is called on every state transition
	OnState func(State)
}

// NewDownloader creates a downloader with the default refresh rate and hold.
func NewDownloader(ffmpegPath string, display Display) *Downloader {
	return &Downloader{
		FFmpegPath:  ffmpegPath,
		Display:     display,
		RefreshRate: types.DefaultRefreshRate,
		HoldFinal:   types.DefaultFinalHold,
	}
}

// Run starts ffmpeg for job and blocks until it exits.
// A non-zero ffmpeg exit is reported in Result.ExitCode, not as an error.
// If ctx is cancelled ffmpeg is interrupted and ctx.Err() is returned.
func (d *Downloader) Run(ctx context.Context, job Job) (Result, error) {
	d.setState(StateStarting)
	start := d.now()

	cmd := exec.CommandContext(ctx, d.FFmpegPath, ffmpegArgs(job, d.Overwrite)...)
	cmd.Cancel = func() error {
		// Give ffmpeg the chance to finalize the container before WaitDelay kills it
		if runtime.GOOS == "windows" {
			return cmd.Process.Kill()
		}
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = types.InterruptGrace

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("failed to open ffmpeg stderr: %w", err)
	}

	utils.Debug("Starting ffmpeg: %s -> %s", job.Source, job.Output)
	if err := cmd.Start(); err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	tracker := NewTracker(start, job.TotalDuration)
	gate := NewRefreshGate(d.RefreshRate)
	d.Display.Show(tracker.Snapshot())
	gate.Mark(start)

	d.setState(StateStreaming)
	reader := bufio.NewReader(stderr)
	var acc LineAccumulator
	for {
		b, err := reader.ReadByte()
		if err != nil {
			// EOF or a read error after ffmpeg closed stderr both end the stream
			break
		}
		if line, ok := acc.Feed(b); ok {
			d.observe(tracker, gate, line)
		}
	}
	if line, ok := acc.Flush(); ok {
		d.observe(tracker, gate, line)
	}

	d.setState(StateDraining)
	waitErr := cmd.Wait()
	exitCode := exitCodeOf(waitErr)
	utils.Debug("ffmpeg exited: code=%d err=%v", exitCode, waitErr)

	if ctx.Err() != nil {
		d.Display.Close()
		return Result{
			ExitCode: exitCode,
			Final:    tracker.Snapshot(),
			Elapsed:  d.now().Sub(start),
		}, ctx.Err()
	}

	end := d.now()
	var size int64
	if info, err := os.Stat(job.Output); err == nil {
		size = info.Size()
	}

	d.setState(StateFinished)
	final := tracker.Finish(end, size)
	d.Display.Show(final)
	d.hold(ctx)
	d.Display.Close()

	return Result{
		ExitCode: exitCode,
		Final:    final,
		Elapsed:  end.Sub(start),
		Size:     size,
	}, nil
}

func (d *Downloader) observe(tracker *Tracker, gate *RefreshGate, line string) {
	now := d.now()
	snap, ok := tracker.Observe(line, now)
	if !ok {
		return
	}
	if gate.Allow(now) {
		d.Display.Show(snap)
	}
}

func (d *Downloader) hold(ctx context.Context) {
	if d.HoldFinal <= 0 {
		return
	}
	t := time.NewTimer(d.HoldFinal)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (d *Downloader) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Downloader) setState(s State) {
	utils.Debug("download state: %s", s)
	if d.OnState != nil {
		d.OnState(s)
	}
}

// ffmpegArgs builds a quiet, stats-only stream copy invocation.
func ffmpegArgs(job Job, overwrite bool) []string {
	exists := "-n"
	if overwrite {
		exists = "-y"
	}
	return []string{
		"-nostdin",
		"-v", "quiet",
		"-stats",
		"-i", job.Source,
		"-c", "copy",
		exists,
		job.Output,
	}
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// RefreshGate limits redraws to a fixed rate by wall-clock time.
type RefreshGate struct {
	interval time.Duration
	last     time.Time
}

// NewRefreshGate allows at most perSecond redraws per second.
// A non-positive rate falls back to the default.
func NewRefreshGate(perSecond float64) *RefreshGate {
	if perSecond <= 0 {
		perSecond = types.DefaultRefreshRate
	}
	return &RefreshGate{interval: time.Duration(float64(time.Second) / perSecond)}
}

// Allow reports whether a redraw at now is due, and if so records it.
func (g *RefreshGate) Allow(now time.Time) bool {
	if !g.last.IsZero() && now.Sub(g.last) < g.interval {
		return false
	}
	g.last = now
	return true
}

// Mark records a redraw at now without asking.
func (g *RefreshGate) Mark(now time.Time) {
	g.last = now
}
