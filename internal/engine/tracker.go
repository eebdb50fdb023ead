package engine

import (
	"time"

	"github.com/tldv-downloader/tldv/internal/engine/types"
	"github.com/tldv-downloader/tldv/internal/utils"
)

// Tracker folds status lines into progress snapshots for one download.
// It holds no I/O, so the whole per-line pipeline can be driven with
// synthetic lines and clock values.
type Tracker struct {
	start    time.Time
	total    float64
	rate     *RateEstimator
	position float64
	snap     types.Snapshot
}

// NewTracker starts tracking a download that began at start. total is the
// media duration in seconds, or 0 when unknown.
func NewTracker(start time.Time, total float64) *Tracker {
	if total < 0 {
		total = 0
	}
	totalText := types.PlaceholderTotal
	if total > 0 {
		totalText = utils.FormatTimeShort(total)
	}
	return &Tracker{
		start: start,
		total: total,
		rate:  NewRateEstimator(start),
		snap:  types.InitialSnapshot(totalText),
	}
}

// Snapshot returns the current snapshot.
func (t *Tracker) Snapshot() types.Snapshot {
	return t.snap
}

// Observe parses line and, if it is a progress line, updates and returns the
// snapshot. Lines without a time= token leave the tracker untouched.
func (t *Tracker) Observe(line string, now time.Time) (types.Snapshot, bool) {
	fact, ok := ParseStatusLine(line)
	if !ok {
		return t.snap, false
	}

	elapsed := now.Sub(t.start).Seconds()
	t.position = fact.Position

	snap := t.snap
	snap.Elapsed = utils.FormatTimeShort(elapsed)
	snap.Position = utils.FormatTimeShort(fact.Position)
	snap.Percent = percentOf(fact.Position, t.total)
	snap.ETA = EstimateETA(fact.Position, t.total, elapsed)

	if fact.HasSpeed {
		snap.Speed = fact.SpeedText + "x"
	} else {
		snap.Speed = types.PlaceholderSpeed
	}

	if fact.HasBytes {
		snap.Rate = t.rate.Observe(now, fact.Bytes)
	} else {
		snap.Rate = t.rate.Display()
	}

	t.snap = snap
	return snap, true
}

// Finish builds the completed snapshot. size is the final output file size
// in bytes; the rate shown is the average over the whole run.
func (t *Tracker) Finish(now time.Time, size int64) types.Snapshot {
	elapsed := now.Sub(t.start).Seconds()

	var avg float64
	if elapsed > 0 && size > 0 {
		avg = float64(size) / types.KB / elapsed
	}

	position := t.snap.Position
	if t.total > 0 {
		position = utils.FormatTimeShort(t.total)
	} else if t.position > 0 {
		position = utils.FormatTimeShort(t.position)
	}

	t.snap = types.Snapshot{
		Percent:  100,
		Elapsed:  utils.FormatTimeShort(elapsed),
		Speed:    types.FinishedSpeed,
		Rate:     utils.FormatRate(avg) + types.AverageRateSuffix,
		ETA:      types.FinishedETA,
		Position: position,
		Total:    t.snap.Total,
		Finished: true,
	}
	return t.snap
}

// percentOf returns position as a share of total, clamped to [0,100].
func percentOf(position, total float64) float64 {
	if total <= 0 {
		return 0
	}
	pct := position / total * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
