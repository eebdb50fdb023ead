package types

import (
	"time"
)

// Size constants
const (
	KB = 1024
	MB = 1024 * KB
)

// Subprocess timing
const (
	ProbeTimeout = 30 * time.Second

	// How long to wait for ffprobe's output pipe after it was killed
	ProbeWaitDelay = 1 * time.Second

	// Grace period between the interrupt and the kill when a download is cancelled
	InterruptGrace = 5 * time.Second
)

// Progress display tuning
const (
	DefaultRefreshRate = 4.0 // redraws per second
	RateSampleInterval = 500 * time.Millisecond
	DefaultFinalHold   = 1 * time.Second
	BarWidth           = 50
)

// Placeholders shown before a value is known
const (
	PlaceholderTime     = "00:00"
	PlaceholderSpeed    = "--.-x"
	PlaceholderRate     = "--"
	PlaceholderETA      = "--:--"
	PlaceholderTotal    = "?"
	FinishedSpeed       = "---"
	FinishedETA         = "00:00"
	AverageRateSuffix   = " avg"
	UnknownDurationText = "Unknown"
)
