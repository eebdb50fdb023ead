package tui

import "time"

const (
	// Timeouts and Intervals
	SpinnerInterval = 100 * time.Millisecond

	// Layout
	PanelWidth          = 76
	StatColumnWidth     = 10
	RateColumnWidth     = 16
	ProgressColumnWidth = 22
	StatusWidth         = 11 // width of the widest status label
	CardLabelWidth      = 10
	DefaultPaddingX     = 1
)

// Panel titles and status labels
const (
	TitleDownloading = "Downloading Video"
	TitleComplete    = "Download Complete"
	StatusActive     = "DOWNLOADING"
	StatusDone       = "COMPLETE"
)
