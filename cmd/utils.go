package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/tldv-downloader/tldv/internal/api"
	"github.com/tldv-downloader/tldv/internal/config"
	"github.com/tldv-downloader/tldv/internal/utils"
)

var (
	ErrNoMeetingURL = errors.New("no meeting URL given: pass it as an argument, with --url, or set TLDV_URL")
	ErrNoToken      = errors.New("no token given: pass --token, set TLDV_TOKEN, or run 'tldv config set token <token>'")
)

// readClipboard is swapped out in tests
var readClipboard = clipboard.ReadAll

// firstNonEmpty returns the first value that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// resolveMeetingURL picks the meeting URL: flag, positional argument,
// TLDV_URL, then a tl;dv link on the clipboard.
func resolveMeetingURL(flagURL string, args []string) (string, error) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	if u := firstNonEmpty(flagURL, arg, os.Getenv("TLDV_URL")); u != "" {
		return u, nil
	}

	if clip, err := readClipboard(); err == nil && utils.IsMeetingURL(clip) {
		utils.Debug("using meeting URL from clipboard")
		return strings.TrimSpace(clip), nil
	} else if err != nil {
		utils.Debug("clipboard unavailable: %v", err)
	}
	return "", ErrNoMeetingURL
}

// resolveToken picks the bearer token: flag, TLDV_TOKEN, then settings.
func resolveToken(flagToken string, settings *config.Settings) (string, error) {
	token := firstNonEmpty(flagToken, os.Getenv("TLDV_TOKEN"), settings.API.Token)
	if token == "" {
		return "", ErrNoToken
	}
	return api.NormalizeToken(token), nil
}

// resolveOutputDir picks the output directory: flag, TLDV_OUTPUT_DIR,
// settings, then the working directory.
func resolveOutputDir(flagDir string, settings *config.Settings) string {
	if dir := firstNonEmpty(flagDir, os.Getenv("TLDV_OUTPUT_DIR"), settings.General.OutputDir); dir != "" {
		return dir
	}
	return "."
}

// resolveToolPaths returns the explicitly configured ffmpeg and ffprobe,
// empty when auto-detection should be used.
func resolveToolPaths(flagFFmpeg, flagFFprobe string, settings *config.Settings) (string, string) {
	ffmpeg := firstNonEmpty(flagFFmpeg, os.Getenv("FFMPEG_PATH"), settings.General.FFmpegPath)
	ffprobe := firstNonEmpty(flagFFprobe, os.Getenv("FFPROBE_PATH"), settings.General.FFprobePath)
	return ffmpeg, ffprobe
}

// maskToken hides all but the last four characters of a token.
func maskToken(token string) string {
	token = strings.TrimSpace(strings.TrimPrefix(api.NormalizeToken(token), "Bearer "))
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", 8) + token[len(token)-4:]
}
