package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tldv-downloader/tldv/internal/config"
	"github.com/tldv-downloader/tldv/internal/tui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that ffmpeg, the token and the output directory are usable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		con := tui.NewConsole(cmd.OutOrStdout())
		failed := false

		settings, err := config.LoadSettings()
		if err != nil {
			con.Warn("Settings: %v", err)
			settings = config.DefaultSettings()
		} else {
			con.Success("Settings   %s", config.GetSettingsPath())
		}

		ffmpeg, ffprobe := resolveToolPaths("", "", settings)
		tools, err := config.ResolveTools(ffmpeg, ffprobe)
		if err != nil {
			con.Warn("FFmpeg     not found (install it or set FFMPEG_PATH)")
			failed = true
		} else {
			con.Success("FFmpeg     %s", tools.FFmpeg)
			if tools.FFprobe == tools.FFmpeg {
				con.Warn("FFprobe    not found, durations will be unknown")
			} else {
				con.Success("FFprobe    %s", tools.FFprobe)
			}
		}

		if token, err := resolveToken("", settings); err != nil {
			con.Warn("Token      not configured")
			failed = true
		} else {
			con.Success("Token      %s", maskToken(token))
		}

		dir := resolveOutputDir("", settings)
		if err := checkWritableDir(dir); err != nil {
			con.Warn("Output     %s: %v", dir, err)
			failed = true
		} else {
			abs, _ := filepath.Abs(dir)
			con.Success("Output     %s", abs)
		}

		con.Info("History    %s", historyDBPath())

		if failed {
			return reported(errors.New("some checks failed"))
		}
		return nil
	},
}

// checkWritableDir creates dir if needed and verifies a file can be written in it.
func checkWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".tldv-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
