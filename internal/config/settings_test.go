package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempConfigHome(t *testing.T) string {
	t.Helper()
	orig := xdg.ConfigHome
	dir := t.TempDir()
	xdg.ConfigHome = dir
	t.Cleanup(func() { xdg.ConfigHome = orig })
	return dir
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings returned nil")
	}

	t.Run("GeneralSettings", func(t *testing.T) {
		if settings.General.OutputDir != "." {
			t.Errorf("OutputDir = %q, want %q", settings.General.OutputDir, ".")
		}
		if !settings.General.SaveTranscript {
			t.Error("SaveTranscript should be true by default")
		}
		if settings.General.Overwrite {
			t.Error("Overwrite should be false by default")
		}
	})

	t.Run("APISettings", func(t *testing.T) {
		if settings.API.BaseURL != "https://gw.tldv.io" {
			t.Errorf("BaseURL = %q", settings.API.BaseURL)
		}
		if settings.API.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want 30s", settings.API.Timeout)
		}
		if settings.API.Token != "" {
			t.Error("Token should be empty by default")
		}
	})

	t.Run("ProgressSettings", func(t *testing.T) {
		if settings.Progress.RefreshRate != 4 {
			t.Errorf("RefreshRate = %v, want 4", settings.Progress.RefreshRate)
		}
		if settings.Progress.HoldFinal != time.Second {
			t.Errorf("HoldFinal = %v, want 1s", settings.Progress.HoldFinal)
		}
	})
}

func TestSettingsPath(t *testing.T) {
	dir := withTempConfigHome(t)
	assert.Equal(t, filepath.Join(dir, "tldv", "settings.json"), GetSettingsPath())
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name     string
		preWrite bool
		contents string
		wantErr  bool
		check    func(t *testing.T, s *Settings)
	}{
		{
			name: "missing file returns defaults",
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, DefaultSettings(), s)
			},
		},
		{
			name:     "empty file returns defaults",
			preWrite: true,
			contents: "  \n",
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, DefaultSettings(), s)
			},
		},
		{
			name:     "partial file keeps other defaults",
			preWrite: true,
			contents: `{"api": {"token": "abc"}, "progress": {"refresh_rate": 10}}`,
			check: func(t *testing.T, s *Settings) {
				assert.Equal(t, "abc", s.API.Token)
				assert.Equal(t, 10.0, s.Progress.RefreshRate)
				assert.Equal(t, "https://gw.tldv.io", s.API.BaseURL)
				assert.Equal(t, time.Second, s.Progress.HoldFinal)
			},
		},
		{
			name:     "invalid json",
			preWrite: true,
			contents: "{not json",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withTempConfigHome(t)
			if tt.preWrite {
				require.NoError(t, os.MkdirAll(GetConfigDir(), 0o755))
				require.NoError(t, os.WriteFile(GetSettingsPath(), []byte(tt.contents), 0o644))
			}

			s, err := LoadSettings()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	withTempConfigHome(t)

	s := DefaultSettings()
	s.API.Token = "Bearer xyz"
	s.General.OutputDir = "/recordings"
	s.Progress.HoldFinal = 2 * time.Second
	require.NoError(t, SaveSettings(s))

	_, err := os.Stat(GetSettingsPath() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	data, err := os.ReadFile(GetSettingsPath())
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "general")

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestSettings_GetSet(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		key, value, want string
	}{
		{"output_dir", "/tmp/out", "/tmp/out"},
		{"token", "abc", "abc"},
		{"overwrite", "true", "true"},
		{"timeout", "45s", "45s"},
		{"refresh_rate", "2.5", "2.5"},
		{"hold_final", "1500ms", "1.5s"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, s.Set(tt.key, tt.value))
			got, err := s.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Error(t, s.Set("nope", "x"))
	assert.Error(t, s.Set("overwrite", "maybe"))
	assert.Error(t, s.Set("refresh_rate", "0"))
	assert.Error(t, s.Set("timeout", "-1s"))
	_, err := s.Get("nope")
	assert.Error(t, err)
}

func TestSettingsMetadataCoversEveryKey(t *testing.T) {
	s := DefaultSettings()
	meta := GetSettingsMetadata()
	for _, cat := range CategoryOrder() {
		require.Contains(t, meta, cat)
		for _, m := range meta[cat] {
			_, err := s.Get(m.Key)
			assert.NoError(t, err, "key %s", m.Key)
		}
	}
}
