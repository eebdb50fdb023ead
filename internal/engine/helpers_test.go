package engine

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/tldv-downloader/tldv/internal/engine/types"
)

// writeScript writes an executable shell script standing in for ffmpeg/ffprobe.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

// stepClock returns a clock that advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}

type recordingDisplay struct {
	mu     sync.Mutex
	shown  []types.Snapshot
	closed int
}

func (r *recordingDisplay) Show(s types.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, s)
}

func (r *recordingDisplay) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
}

func (r *recordingDisplay) snapshots() []types.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Snapshot(nil), r.shown...)
}
