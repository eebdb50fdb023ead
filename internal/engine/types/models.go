package types

import "time"

// ProgressFact is what one ffmpeg status line says about the transfer.
type ProgressFact struct {
	Position  float64 // seconds of media processed
	Speed     float64 // processing speed multiplier
	SpeedText string  // speed as ffmpeg printed it, without the x
	HasSpeed  bool
	Bytes     int64 // output bytes written so far
	HasBytes  bool
}

// RateSample is the last (time, bytes) point the rate estimator measured against.
type RateSample struct {
	At    time.Time
	Bytes int64
}

// Snapshot is the display-ready state of a download at one instant
type Snapshot struct {
	Percent  float64 // 0-100
	Elapsed  string
	Speed    string
	Rate     string
	ETA      string
	Position string
	Total    string
	Finished bool
}

// PositionDisplay returns "cur / total", or just cur when the total is unknown.
func (s Snapshot) PositionDisplay() string {
	if s.Total == "" || s.Total == PlaceholderTotal {
		return s.Position
	}
	return s.Position + " / " + s.Total
}

// InitialSnapshot is shown before the first status line arrives.
func InitialSnapshot(total string) Snapshot {
	if total == "" {
		total = PlaceholderTotal
	}
	return Snapshot{
		Elapsed:  PlaceholderTime,
		Speed:    PlaceholderSpeed,
		Rate:     PlaceholderRate,
		ETA:      PlaceholderETA,
		Position: PlaceholderTime,
		Total:    total,
	}
}
