package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/tldv-downloader/tldv/internal/engine/types"
)

const appName = "tldv"

// Settings holds all user-configurable application settings organized by category.
type Settings struct {
	General  GeneralSettings  `json:"general"`
	API      APISettings      `json:"api"`
	Progress ProgressSettings `json:"progress"`
}

// GeneralSettings contains output and tool locations.
type GeneralSettings struct {
	OutputDir      string `json:"output_dir"`
	FFmpegPath     string `json:"ffmpeg_path"`
	FFprobePath    string `json:"ffprobe_path"`
	Overwrite      bool   `json:"overwrite"`
	SaveTranscript bool   `json:"save_transcript"`
	RecordHistory  bool   `json:"record_history"`
}

// APISettings contains tl;dv gateway parameters.
type APISettings struct {
	BaseURL   string        `json:"base_url"`
	Token     string        `json:"token"`
	UserAgent string        `json:"user_agent"`
	Timeout   time.Duration `json:"timeout"`
}

// ProgressSettings tunes the live progress panel.
type ProgressSettings struct {
	RefreshRate float64       `json:"refresh_rate"`
	HoldFinal   time.Duration `json:"hold_final"`
}

// SettingMeta provides metadata for a single setting.
type SettingMeta struct {
	Key         string // JSON key name
	Label       string // Human-readable label
	Description string // Help text
	Type        string // "string", "bool", "duration", "float64"
}

// GetSettingsMetadata returns metadata for all settings organized by category.
func GetSettingsMetadata() map[string][]SettingMeta {
	return map[string][]SettingMeta{
		"General": {
			{Key: "output_dir", Label: "Output Dir", Description: "Directory the video, metadata and transcript are written to.", Type: "string"},
			{Key: "ffmpeg_path", Label: "FFmpeg Path", Description: "Path to ffmpeg. Leave empty to search PATH and common install locations.", Type: "string"},
			{Key: "ffprobe_path", Label: "FFprobe Path", Description: "Path to ffprobe. Leave empty to look next to ffmpeg.", Type: "string"},
			{Key: "overwrite", Label: "Overwrite", Description: "Replace an existing video file instead of failing.", Type: "bool"},
			{Key: "save_transcript", Label: "Save Transcript", Description: "Write the meeting transcript as a text file.", Type: "bool"},
			{Key: "record_history", Label: "Record History", Description: "Keep a local history of completed downloads.", Type: "bool"},
		},
		"API": {
			{Key: "base_url", Label: "Base URL", Description: "tl;dv gateway URL.", Type: "string"},
			{Key: "token", Label: "Token", Description: "Bearer token copied from the browser. The 'Bearer ' prefix is optional.", Type: "string"},
			{Key: "user_agent", Label: "User Agent", Description: "User-Agent sent to the gateway.", Type: "string"},
			{Key: "timeout", Label: "Timeout", Description: "HTTP timeout for API requests (e.g., 30s).", Type: "duration"},
		},
		"Progress": {
			{Key: "refresh_rate", Label: "Refresh Rate", Description: "Progress panel redraws per second.", Type: "float64"},
			{Key: "hold_final", Label: "Hold Final", Description: "How long the completed panel stays on screen (e.g., 1s).", Type: "duration"},
		},
	}
}

// CategoryOrder returns the order of categories for display.
func CategoryOrder() []string {
	return []string{"General", "API", "Progress"}
}

// DefaultSettings returns a new Settings instance with sensible defaults.
func DefaultSettings() *Settings {
	return &Settings{
		General: GeneralSettings{
			OutputDir:      ".",
			SaveTranscript: true,
			RecordHistory:  true,
		},
		API: APISettings{
			BaseURL:   "https://gw.tldv.io",
			UserAgent: "tldv-downloader",
			Timeout:   30 * time.Second,
		},
		Progress: ProgressSettings{
			RefreshRate: types.DefaultRefreshRate,
			HoldFinal:   types.DefaultFinalHold,
		},
	}
}

// GetConfigDir returns the directory holding settings.json.
func GetConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// GetStateDir returns the directory for the debug log and history database.
func GetStateDir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// GetSettingsPath returns the path to the settings JSON file.
func GetSettingsPath() string {
	return filepath.Join(GetConfigDir(), "settings.json")
}

// LoadSettings loads settings from disk. Returns defaults if file doesn't exist.
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings() // Start with defaults to fill any missing fields
	if len(strings.TrimSpace(string(data))) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("invalid settings file %s: %w", path, err)
	}

	return settings, nil
}

// SaveSettings saves settings to disk atomically.
func SaveSettings(s *Settings) error {
	path := GetSettingsPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: write to temp file, then rename. The file may hold a token.
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tempPath, path)
}

// Get returns the display value of the setting with the given key.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "output_dir":
		return s.General.OutputDir, nil
	case "ffmpeg_path":
		return s.General.FFmpegPath, nil
	case "ffprobe_path":
		return s.General.FFprobePath, nil
	case "overwrite":
		return strconv.FormatBool(s.General.Overwrite), nil
	case "save_transcript":
		return strconv.FormatBool(s.General.SaveTranscript), nil
	case "record_history":
		return strconv.FormatBool(s.General.RecordHistory), nil
	case "base_url":
		return s.API.BaseURL, nil
	case "token":
		return s.API.Token, nil
	case "user_agent":
		return s.API.UserAgent, nil
	case "timeout":
		return s.API.Timeout.String(), nil
	case "refresh_rate":
		return strconv.FormatFloat(s.Progress.RefreshRate, 'f', -1, 64), nil
	case "hold_final":
		return s.Progress.HoldFinal.String(), nil
	}
	return "", fmt.Errorf("unknown setting %q", key)
}

// Set parses value according to the setting's type and stores it.
func (s *Settings) Set(key, value string) error {
	meta, ok := lookupMeta(key)
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}

	var (
		b   bool
		d   time.Duration
		f   float64
		err error
	)
	switch meta.Type {
	case "bool":
		b, err = strconv.ParseBool(value)
	case "duration":
		d, err = time.ParseDuration(value)
		if err == nil && d < 0 {
			err = fmt.Errorf("must not be negative")
		}
	case "float64":
		f, err = strconv.ParseFloat(value, 64)
		if err == nil && f <= 0 {
			err = fmt.Errorf("must be positive")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	switch key {
	case "output_dir":
		s.General.OutputDir = value
	case "ffmpeg_path":
		s.General.FFmpegPath = value
	case "ffprobe_path":
		s.General.FFprobePath = value
	case "overwrite":
		s.General.Overwrite = b
	case "save_transcript":
		s.General.SaveTranscript = b
	case "record_history":
		s.General.RecordHistory = b
	case "base_url":
		s.API.BaseURL = value
	case "token":
		s.API.Token = value
	case "user_agent":
		s.API.UserAgent = value
	case "timeout":
		s.API.Timeout = d
	case "refresh_rate":
		s.Progress.RefreshRate = f
	case "hold_final":
		s.Progress.HoldFinal = d
	}
	return nil
}

func lookupMeta(key string) (SettingMeta, bool) {
	for _, metas := range GetSettingsMetadata() {
		for _, m := range metas {
			if m.Key == key {
				return m, true
			}
		}
	}
	return SettingMeta{}, false
}
