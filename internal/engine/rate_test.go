package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tldv-downloader/tldv/internal/engine/types"
)

func TestRateEstimator_SampleGate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRateEstimator(start)
	assert.Equal(t, types.PlaceholderRate, r.Display())

	// Too soon after the seed sample: display unchanged
	assert.Equal(t, types.PlaceholderRate, r.Observe(start.Add(400*time.Millisecond), 100*1024))

	// 512 KiB over 0.5s
	assert.Equal(t, "1.0 MB/s", r.Observe(start.Add(500*time.Millisecond), 512*1024))

	// 0.2s later: still the previous value even though bytes moved
	assert.Equal(t, "1.0 MB/s", r.Observe(start.Add(700*time.Millisecond), 10*1024*1024))

	// Measured against the stored sample at 0.5s, not the skipped one at 0.7s
	assert.Equal(t, "256 KB/s", r.Observe(start.Add(1500*time.Millisecond), 768*1024))
}

func TestRateEstimator_NeverNegative(t *testing.T) {
	start := time.Now()
	r := NewRateEstimator(start)
	r.Observe(start.Add(time.Second), 1024*1024)
	assert.Equal(t, "0 KB/s", r.Observe(start.Add(2*time.Second), 0))
}

func TestEstimateETA(t *testing.T) {
	tests := []struct {
		name                     string
		position, total, elapsed float64
		want                     string
	}{
		{"unknown total", 100, 0, 10, types.PlaceholderETA},
		{"no progress yet", 0, 900, 10, types.PlaceholderETA},
		{"half way after a minute", 450, 900, 60, "01:00"},
		{"zero elapsed uses unit rate", 10, 70, 0, "01:00"},
		{"past the end clamps to zero", 950, 900, 60, "00:00"},
		{"long remaining", 60, 7260, 60, "2:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateETA(tt.position, tt.total, tt.elapsed))
		})
	}
}
