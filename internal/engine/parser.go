package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tldv-downloader/tldv/internal/engine/types"
)

var (
	timePattern  = regexp.MustCompile(`time=(\d+):(\d{2}):(\d{2})\.(\d{2})`)
	speedPattern = regexp.MustCompile(`speed=\s*([\d.]+)x`)
	sizePattern  = regexp.MustCompile(`size=\s*(\d+)\s*([kK]i?)?B`)
)

// ParseStatusLine extracts progress facts from one ffmpeg -stats line.
// ok is false when the line carries no time= token; such lines are not
// progress lines and must not change any state.
func ParseStatusLine(line string) (fact types.ProgressFact, ok bool) {
	m := timePattern.FindStringSubmatch(line)
	if m == nil {
		return types.ProgressFact{}, false
	}

	h, _ := strconv.ParseFloat(m[1], 64)
	mins, _ := strconv.ParseFloat(m[2], 64)
	sec, _ := strconv.ParseFloat(m[3], 64)
	hundredths, _ := strconv.ParseFloat(m[4], 64)
	fact.Position = h*3600 + mins*60 + sec + hundredths/100

	if sm := speedPattern.FindStringSubmatch(line); sm != nil {
		if v, err := strconv.ParseFloat(sm[1], 64); err == nil {
			fact.Speed = v
			fact.SpeedText = sm[1]
			fact.HasSpeed = true
		}
	}

	if zm := sizePattern.FindStringSubmatch(line); zm != nil {
		if n, err := strconv.ParseInt(zm[1], 10, 64); err == nil {
			if zm[2] != "" {
				n *= types.KB
			}
			fact.Bytes = n
			fact.HasBytes = true
		}
	}

	return fact, true
}

// LineAccumulator reassembles lines from a byte stream where either '\r'
// or '\n' terminates a line. ffmpeg rewrites its status line with '\r'.
type LineAccumulator struct {
	buf []byte
}

// Feed appends b. When b is a terminator the buffered line is returned
// trimmed; empty lines are dropped.
func (a *LineAccumulator) Feed(b byte) (string, bool) {
	if b != '\r' && b != '\n' {
		a.buf = append(a.buf, b)
		return "", false
	}
	return a.Flush()
}

// Flush returns whatever is buffered as a line and resets the buffer.
// Call it at end of stream to recover a trailing unterminated line.
func (a *LineAccumulator) Flush() (string, bool) {
	line := strings.TrimSpace(string(a.buf))
	a.buf = a.buf[:0]
	if line == "" {
		return "", false
	}
	return line, true
}
