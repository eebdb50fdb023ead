package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tldv-downloader/tldv/internal/config"
	"github.com/tldv-downloader/tldv/internal/utils"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// rootCmd downloads one meeting when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "tldv [meeting-url]",
	Short: "Download tl;dv meeting recordings with transcripts",
	Long: `tldv downloads a tl;dv meeting recording together with its metadata and
transcript. The video stream is copied to disk by ffmpeg while a live panel
shows elapsed time, transfer rate and ETA.

The meeting URL and token are taken from flags, then the TLDV_URL and
TLDV_TOKEN environment variables, then the settings file. A tl;dv meeting
link on the clipboard is used when no URL is given.`,
	Version:           Version,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeGlobalState,
	RunE:              runDownload,
}

// reportedError marks an error the user has already been shown.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer utils.CloseDebug()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var re *reportedError
		if !errors.As(err, &re) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		utils.CloseDebug()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("url", "u", "", "Meeting URL or ID (env TLDV_URL)")
	rootCmd.Flags().StringP("token", "t", "", "Bearer token from the tl;dv web app (env TLDV_TOKEN)")
	rootCmd.Flags().StringP("output-dir", "o", "", "Output directory (env TLDV_OUTPUT_DIR, default \".\")")
	rootCmd.Flags().String("ffmpeg", "", "Path to ffmpeg (env FFMPEG_PATH)")
	rootCmd.Flags().String("ffprobe", "", "Path to ffprobe (env FFPROBE_PATH)")
	rootCmd.Flags().BoolP("force", "f", false, "Overwrite an existing video file")
	rootCmd.Flags().Bool("no-transcript", false, "Do not write the transcript file")
	rootCmd.Flags().Bool("no-history", false, "Do not record this download in the history")
	rootCmd.PersistentFlags().Bool("debug", false, "Write a debug log to the state directory")
	rootCmd.SetVersionTemplate("tldv version {{.Version}}\n")
}

// initializeGlobalState enables the debug log when asked to
func initializeGlobalState(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	if !debug {
		return nil
	}
	logPath := filepath.Join(config.GetStateDir(), "debug.log")
	if err := utils.ConfigureDebug(logPath); err != nil {
		return err
	}
	utils.Debug("tldv %s (built %s) starting: %v", Version, BuildTime, os.Args[1:])
	return nil
}
