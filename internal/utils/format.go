package utils

import (
	"fmt"
	"math"
)

// FormatTimeShort renders seconds as MM:SS, or H:MM:SS from one hour up.
func FormatTimeShort(seconds float64) string {
	total := wholeSeconds(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatDuration renders seconds in the long form used by the meeting card,
// e.g. "1h 30m 0s" or "4m 5s".
func FormatDuration(seconds float64) string {
	total := wholeSeconds(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

// FormatRate renders a transfer rate given in KiB/s.
func FormatRate(kbPerSec float64) string {
	if kbPerSec >= 1024 {
		return fmt.Sprintf("%.1f MB/s", kbPerSec/1024)
	}
	return fmt.Sprintf("%.0f KB/s", kbPerSec)
}

func wholeSeconds(seconds float64) int {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0
	}
	return int(seconds)
}
