package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tldv-downloader/tldv/internal/api"
	"github.com/tldv-downloader/tldv/internal/config"
	"github.com/tldv-downloader/tldv/internal/engine"
	"github.com/tldv-downloader/tldv/internal/engine/types"
	"github.com/tldv-downloader/tldv/internal/history"
	"github.com/tldv-downloader/tldv/internal/meeting"
	"github.com/tldv-downloader/tldv/internal/tui"
	"github.com/tldv-downloader/tldv/internal/utils"
)

const totalSteps = 3

// downloadOptions are the resolved inputs of one download.
type downloadOptions struct {
	MeetingURL   string
	Token        string
	OutputDir    string
	FFmpeg       string
	FFprobe      string
	Force        bool
	NoTranscript bool
	NoHistory    bool
}

// pipeline fetches a meeting, saves its metadata and transcript, and
// downloads the video.
type pipeline struct {
	con         *tui.Console
	client      *api.Client
	tools       config.Tools
	outputDir   string
	meetingID   string
	overwrite   bool
	transcript  bool
	historyPath string // empty disables history
	progress    config.ProgressSettings
	now         func() time.Time
}

func runDownload(cmd *cobra.Command, args []string) error {
	con := tui.NewConsole(cmd.OutOrStdout())

	settings, err := config.LoadSettings()
	if err != nil {
		con.Warn("Ignoring settings file: %v", err)
		settings = config.DefaultSettings()
	}

	flags := cmd.Flags()
	flagURL, _ := flags.GetString("url")
	flagToken, _ := flags.GetString("token")
	flagDir, _ := flags.GetString("output-dir")
	flagFFmpeg, _ := flags.GetString("ffmpeg")
	flagFFprobe, _ := flags.GetString("ffprobe")
	force, _ := flags.GetBool("force")
	noTranscript, _ := flags.GetBool("no-transcript")
	noHistory, _ := flags.GetBool("no-history")

	meetingURL, err := resolveMeetingURL(flagURL, args)
	if err != nil {
		return err
	}
	token, err := resolveToken(flagToken, settings)
	if err != nil {
		return err
	}
	ffmpeg, ffprobe := resolveToolPaths(flagFFmpeg, flagFFprobe, settings)

	p, err := newPipeline(con, settings, downloadOptions{
		MeetingURL:   meetingURL,
		Token:        token,
		OutputDir:    resolveOutputDir(flagDir, settings),
		FFmpeg:       ffmpeg,
		FFprobe:      ffprobe,
		Force:        force,
		NoTranscript: noTranscript,
		NoHistory:    noHistory,
	})
	if err != nil {
		return err
	}
	return p.run(cmd.Context())
}

// newPipeline validates the environment before any network traffic.
func newPipeline(con *tui.Console, settings *config.Settings, opts downloadOptions) (*pipeline, error) {
	meetingID := utils.ExtractMeetingID(opts.MeetingURL)
	if meetingID == "" {
		return nil, fmt.Errorf("cannot find a meeting ID in %q", opts.MeetingURL)
	}

	tools, err := config.ResolveTools(opts.FFmpeg, opts.FFprobe)
	if errors.Is(err, config.ErrFFmpegNotFound) {
		con.ErrorPanel("Missing Dependency", "FFmpeg not found!\n\n"+
			"Install FFmpeg and make sure it's on your PATH:\n"+
			"  Windows:  winget install ffmpeg\n"+
			"  macOS:    brew install ffmpeg\n"+
			"  Linux:    sudo apt install ffmpeg\n\n"+
			"Or provide the path with --ffmpeg /path/to/ffmpeg")
		return nil, reported(err)
	}
	if err != nil {
		return nil, err
	}
	utils.Debug("using ffmpeg=%s ffprobe=%s", tools.FFmpeg, tools.FFprobe)

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	client := api.NewClient(settings.API.BaseURL, opts.Token)
	if settings.API.UserAgent != "" {
		client.UserAgent = settings.API.UserAgent
	}
	if settings.API.Timeout > 0 {
		client.HTTP.Timeout = settings.API.Timeout
	}

	var historyPath string
	if settings.General.RecordHistory && !opts.NoHistory {
		historyPath = historyDBPath()
	}

	return &pipeline{
		con:         con,
		client:      client,
		tools:       tools,
		outputDir:   opts.OutputDir,
		meetingID:   meetingID,
		overwrite:   opts.Force || settings.General.Overwrite,
		transcript:  settings.General.SaveTranscript && !opts.NoTranscript,
		historyPath: historyPath,
		progress:    settings.Progress,
		now:         time.Now,
	}, nil
}

func (p *pipeline) run(ctx context.Context) error {
	// Step 1: fetch metadata
	p.con.Step(1, totalSteps, "Fetching meeting metadata...")

	var (
		page *meeting.WatchPage
		raw  []byte
	)
	err := p.con.Spin(ctx, "Connecting to tl;dv servers...", func(ctx context.Context) error {
		var err error
		page, raw, err = p.client.FetchWatchPage(ctx, p.meetingID)
		return err
	})
	if err != nil {
		return p.reportFetchError(err)
	}

	m, err := meeting.FromWatchPage(p.meetingID, page, p.now())
	if errors.Is(err, meeting.ErrNoVideoSource) {
		p.con.ErrorPanel("Error", "No video source found!\n\nThe meeting may still be processing or the video is unavailable.")
		return reported(err)
	}
	if err != nil {
		return err
	}

	var duration float64
	_ = p.con.Spin(ctx, "Probing video duration...", func(ctx context.Context) error {
		duration = engine.ProbeDuration(ctx, p.tools.FFprobe, m.Source)
		return nil
	})
	p.con.Success("Metadata fetched successfully")

	videoPath := m.VideoPath(p.outputDir)
	durationText := types.UnknownDurationText
	if duration > 0 {
		durationText = utils.FormatDuration(duration)
	}
	p.con.MeetingInfo(tui.MeetingCard{
		Name:     m.Name,
		Date:     m.DisplayDate(),
		Duration: durationText,
		ID:       m.ID,
		Output:   filepath.Base(videoPath),
	})

	// Step 2: save metadata and transcript
	p.con.Step(2, totalSteps, "Saving meeting data...")

	files := []tui.FileEntry{}
	metaPath, err := m.WriteMetadata(p.outputDir, raw)
	if err != nil {
		return err
	}
	p.con.Success("Metadata   → %s", filepath.Base(metaPath))

	var transcriptPath string
	if p.transcript {
		transcriptPath, err = m.WriteTranscript(p.outputDir)
		if err != nil {
			return err
		}
		if transcriptPath != "" {
			p.con.Success("Transcript → %s", filepath.Base(transcriptPath))
		} else {
			p.con.Warn("No transcript available for this meeting")
		}
	} else {
		p.con.Info("Transcript skipped")
	}

	// Step 3: download the video
	p.con.Step(3, totalSteps, "Downloading video...")

	if !p.overwrite {
		if _, err := os.Stat(videoPath); err == nil {
			p.con.ErrorPanel("File Exists", fmt.Sprintf("%s already exists.\n\nUse --force to overwrite it.", filepath.Base(videoPath)))
			return reported(fmt.Errorf("%s already exists", videoPath))
		}
	}

	lock, err := acquireOutputLock(videoPath)
	if err != nil {
		p.con.ErrorPanel("Busy", err.Error())
		return reported(err)
	}
	defer releaseOutputLock(lock)

	d := engine.NewDownloader(p.tools.FFmpeg, p.con.Live())
	d.RefreshRate = p.progress.RefreshRate
	d.HoldFinal = p.progress.HoldFinal
	d.Overwrite = p.overwrite

	res, err := d.Run(ctx, engine.Job{Source: m.Source, Output: videoPath, TotalDuration: duration})
	if err != nil {
		if ctx.Err() != nil {
			p.con.Warn("Download interrupted")
			return reported(err)
		}
		p.con.ErrorPanel("FFmpeg Error", err.Error())
		return reported(err)
	}

	if res.ExitCode != 0 || res.Size == 0 {
		msg := fmt.Sprintf("ffmpeg exited with code %d", res.ExitCode)
		if res.ExitCode == 0 {
			msg = "ffmpeg finished but wrote no video"
		}
		p.con.ErrorPanel("Download Failed", msg)
		return reported(errors.New(msg))
	}

	if !utils.IsVideoFile(videoPath) {
		p.con.Warn("%s does not look like a video file", filepath.Base(videoPath))
	}

	p.recordHistory(ctx, m, videoPath, duration, res)

	files = append(files, tui.FileEntry{Kind: "Video", Path: filepath.Base(videoPath), Size: res.Size})
	files = append(files, tui.FileEntry{Kind: "Metadata", Path: filepath.Base(metaPath), Size: fileSize(metaPath)})
	if transcriptPath != "" {
		files = append(files, tui.FileEntry{Kind: "Transcript", Path: filepath.Base(transcriptPath), Size: fileSize(transcriptPath)})
	}
	p.con.Summary(files, res.Elapsed)
	return nil
}

func (p *pipeline) reportFetchError(err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		p.con.ErrorPanel("Auth Error (401)", "Authentication failed!\n\n"+
			"Your token may be expired or invalid.\n"+
			"Get a fresh token from your browser developer tools (Network tab).")
	case errors.Is(err, api.ErrNotFound):
		p.con.ErrorPanel("Not Found (404)", "Meeting not found!\n\n"+
			"Meeting ID: "+p.meetingID+"\n"+
			"Check that the URL is correct and you have access to this meeting.")
	case errors.Is(err, context.Canceled):
		p.con.Warn("Interrupted")
	default:
		p.con.ErrorPanel("Error", err.Error())
	}
	return reported(err)
}

// recordHistory stores the finished download; failures only reach the debug log.
func (p *pipeline) recordHistory(ctx context.Context, m *meeting.Meeting, videoPath string, duration float64, res engine.Result) {
	if p.historyPath == "" {
		return
	}
	store, err := history.Open(p.historyPath)
	if err != nil {
		utils.Debug("history unavailable: %v", err)
		return
	}
	defer store.Close()

	abs, err := filepath.Abs(videoPath)
	if err != nil {
		abs = videoPath
	}
	if _, err := store.Record(ctx, history.Entry{
		MeetingID:       m.ID,
		Name:            m.Name,
		OutputPath:      abs,
		SizeBytes:       res.Size,
		DurationSeconds: duration,
		Elapsed:         res.Elapsed,
		ExitCode:        res.ExitCode,
		CompletedAt:     p.now(),
	}); err != nil {
		utils.Debug("history record failed: %v", err)
	}
}

func historyDBPath() string {
	return filepath.Join(config.GetStateDir(), "history.db")
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
