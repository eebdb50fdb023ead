package cmd

import (
	"os"
	"testing"

	"github.com/adrg/xdg"
)

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "tldv-cmd-test-*")
	if err == nil {
		_ = os.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
		_ = os.Setenv("XDG_STATE_HOME", tmpDir+"/state")
		_ = os.Setenv("APPDATA", tmpDir)
		_ = os.Setenv("LOCALAPPDATA", tmpDir)
		_ = os.Setenv("USERPROFILE", tmpDir)
		xdg.Reload()
	}
	for _, key := range []string{"TLDV_URL", "TLDV_TOKEN", "TLDV_OUTPUT_DIR", "FFMPEG_PATH", "FFPROBE_PATH"} {
		_ = os.Unsetenv(key)
	}

	code := m.Run()

	if err == nil {
		_ = os.RemoveAll(tmpDir)
	}
	os.Exit(code)
}
