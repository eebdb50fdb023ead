package engine

import (
	"time"

	"github.com/tldv-downloader/tldv/internal/engine/types"
	"github.com/tldv-downloader/tldv/internal/utils"
)

// RateEstimator turns cumulative byte counts into a transfer rate display.
// It measures against a single prior sample and only recomputes once
// RateSampleInterval has passed, so the display does not flicker.
type RateEstimator struct {
	last    types.RateSample
	display string
}

// NewRateEstimator seeds the estimator with a zero-byte sample at start.
func NewRateEstimator(start time.Time) *RateEstimator {
	return &RateEstimator{
		last:    types.RateSample{At: start},
		display: types.PlaceholderRate,
	}
}

// Observe records the byte count seen at now and returns the rate display.
func (r *RateEstimator) Observe(now time.Time, bytes int64) string {
	dt := now.Sub(r.last.At)
	if dt < types.RateSampleInterval {
		return r.display
	}

	kbps := float64(bytes-r.last.Bytes) / types.KB / dt.Seconds()
	if kbps < 0 {
		kbps = 0
	}
	r.display = utils.FormatRate(kbps)
	r.last = types.RateSample{At: now, Bytes: bytes}
	return r.display
}

// Display returns the most recent rate display without sampling.
func (r *RateEstimator) Display() string {
	return r.display
}

// EstimateETA extrapolates the remaining time linearly from the average
// progress rate since start. Rate changes are not smoothed, so the ETA
// jitters on transfers whose speed varies.
func EstimateETA(position, total, elapsed float64) string {
	if total <= 0 || position <= 0 {
		return types.PlaceholderETA
	}
	rate := 1.0
	if elapsed > 0 {
		rate = position / elapsed
	}
	remaining := (total - position) / rate
	if remaining < 0 {
		remaining = 0
	}
	return utils.FormatTimeShort(remaining)
}
