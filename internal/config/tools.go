package config

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/tldv-downloader/tldv/internal/utils"
)

// ErrFFmpegNotFound means no ffmpeg was configured or could be found.
var ErrFFmpegNotFound = errors.New("ffmpeg not found")

// Tools are the resolved external executables.
type Tools struct {
	FFmpeg  string
	FFprobe string
}

// Test hooks
var (
	lookPath        = exec.LookPath
	commonLocations = defaultLocations
)

// ResolveTools picks the ffmpeg and ffprobe to run. Explicit paths win;
// otherwise ffmpeg is searched on PATH and in common install locations, and
// ffprobe on PATH and next to ffmpeg. When no ffprobe exists, ffmpeg itself
// is used, which makes the duration probe fail softly.
func ResolveTools(ffmpeg, ffprobe string) (Tools, error) {
	if ffmpeg == "" {
		ffmpeg = FindFFmpeg()
		if ffmpeg == "" {
			return Tools{}, ErrFFmpegNotFound
		}
	}
	if ffprobe == "" {
		ffprobe = FindFFprobe(ffmpeg)
	}
	if ffprobe == "" {
		utils.Debug("ffprobe not found, falling back to %s", ffmpeg)
		ffprobe = ffmpeg
	}
	return Tools{FFmpeg: ffmpeg, FFprobe: ffprobe}, nil
}

// FindFFmpeg returns the first ffmpeg found, or "".
func FindFFmpeg() string {
	if p, err := lookPath("ffmpeg"); err == nil {
		return p
	}
	for _, p := range commonLocations() {
		if isFile(p) {
			return p
		}
	}
	return ""
}

// FindFFprobe returns ffprobe from PATH or the directory of ffmpeg, or "".
func FindFFprobe(ffmpeg string) string {
	if p, err := lookPath("ffprobe"); err == nil {
		return p
	}
	if ffmpeg == "" {
		return ""
	}
	candidate := filepath.Join(filepath.Dir(ffmpeg), "ffprobe"+exeSuffix())
	if isFile(candidate) {
		return candidate
	}
	return ""
}

func defaultLocations() []string {
	if runtime.GOOS == "windows" {
		return []string{
			filepath.Join(os.Getenv("LOCALAPPDATA"), "Programs", "ffmpeg", "bin", "ffmpeg.exe"),
			filepath.Join(os.Getenv("ProgramFiles"), "ffmpeg", "bin", "ffmpeg.exe"),
			filepath.Join(os.Getenv("ProgramFiles(x86)"), "ffmpeg", "bin", "ffmpeg.exe"),
		}
	}
	return []string{
		"/usr/local/bin/ffmpeg",
		"/usr/bin/ffmpeg",
		"/opt/homebrew/bin/ffmpeg",
	}
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
