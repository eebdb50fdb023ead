package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tldv-downloader/tldv/internal/engine/types"
	"github.com/tldv-downloader/tldv/internal/utils"
)

// probeOutput is the part of `ffprobe -show_format` JSON we read
type probeOutput struct {
	Format struct {
		Duration json.RawMessage `json:"duration"`
	} `json:"format"`
}

// ProbeDuration asks ffprobe for the total media duration of source, in seconds.
// It never fails: any problem (missing tool, timeout, unparsable output)
// yields 0, which downstream treats as "total unknown".
func ProbeDuration(ctx context.Context, ffprobePath, source string) float64 {
	utils.Debug("Probing duration: %s", source)

	probeCtx, cancel := context.WithTimeout(ctx, types.ProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		source,
	)
	// A wrapper script can leave a child holding stdout after the kill
	cmd.WaitDelay = types.ProbeWaitDelay
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		utils.Debug("ffprobe failed: %v", err)
		return 0
	}

	duration, err := parseProbeDuration(stdout.Bytes())
	if err != nil {
		utils.Debug("ffprobe output unusable: %v", err)
		return 0
	}
	utils.Debug("Probe complete - duration: %.2fs", duration)
	return duration
}

func parseProbeDuration(data []byte) (float64, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, err
	}

	// ffprobe emits the duration as a string, but accept a bare number too
	raw := strings.Trim(strings.TrimSpace(string(out.Format.Duration)), `"`)
	if raw == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, nil
	}
	return d, nil
}
