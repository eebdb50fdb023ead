package meeting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tldv-downloader/tldv/internal/utils"
)

// ErrNoVideoSource is returned when the watch page has no playable stream,
// usually because the recording is still processing.
var ErrNoVideoSource = errors.New("no video source found")

const (
	DefaultName      = "No name"
	DefaultSpeaker   = "Unknown"
	fileTimeLayout   = "2006-01-02-15-04-05"
	displayLayout    = "Jan 02, 2006  03:04 PM"
	transcriptSuffix = "_transcript.txt"
)

// WatchPage is the subset of the tl;dv watch-page response we use.
type WatchPage struct {
	Meeting struct {
		Name      string `json:"name"`
		CreatedAt string `json:"createdAt"`
	} `json:"meeting"`
	Video struct {
		Source     string `json:"source"`
		Transcript struct {
			Data [][]Word `json:"data"`
		} `json:"transcript"`
	} `json:"video"`
}

// Word is one transcribed word.
type Word struct {
	Speaker   string `json:"speaker"`
	StartTime struct {
		Seconds float64 `json:"seconds"`
	} `json:"startTime"`
	Word string `json:"word"`
}

// Meeting is a recorded meeting ready to be saved to disk.
type Meeting struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Source    string
	Segments  [][]Word
}

// FromWatchPage builds a Meeting from a decoded watch page. now stands in
// for a missing or unparsable creation time.
func FromWatchPage(id string, page *WatchPage, now time.Time) (*Meeting, error) {
	if page == nil || strings.TrimSpace(page.Video.Source) == "" {
		return nil, ErrNoVideoSource
	}

	name := strings.TrimSpace(page.Meeting.Name)
	if name == "" {
		name = DefaultName
	}

	created := now
	if page.Meeting.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, page.Meeting.CreatedAt); err == nil {
			created = t
		} else {
			utils.Debug("unparsable createdAt %q: %v", page.Meeting.CreatedAt, err)
		}
	}

	return &Meeting{
		ID:        id,
		Name:      name,
		CreatedAt: created,
		Source:    page.Video.Source,
		Segments:  page.Video.Transcript.Data,
	}, nil
}

// BaseName is the file name stem shared by all files of this meeting,
// e.g. 2024-03-01-10-00-00_Weekly Sync.
func (m *Meeting) BaseName() string {
	return m.CreatedAt.Format(fileTimeLayout) + "_" + utils.SanitizeFilename(m.Name)
}

// DisplayDate formats the creation time for the info card.
func (m *Meeting) DisplayDate() string {
	return m.CreatedAt.Format(displayLayout)
}

func (m *Meeting) VideoPath(dir string) string {
	return filepath.Join(dir, m.BaseName()+".mp4")
}

func (m *Meeting) MetadataPath(dir string) string {
	return filepath.Join(dir, m.BaseName()+".json")
}

func (m *Meeting) TranscriptPath(dir string) string {
	return filepath.Join(dir, m.BaseName()+transcriptSuffix)
}

// HasTranscript reports whether any segment has words.
func (m *Meeting) HasTranscript() bool {
	for _, seg := range m.Segments {
		if len(seg) > 0 {
			return true
		}
	}
	return false
}

// WriteMetadata stores the raw watch-page body next to the video.
func (m *Meeting) WriteMetadata(dir string, raw []byte) (string, error) {
	path := m.MetadataPath(dir)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}
	return path, nil
}

// WriteTranscript writes the transcript text file. It returns "" and no
// error when the meeting has no transcript.
func (m *Meeting) WriteTranscript(dir string) (string, error) {
	if !m.HasTranscript() {
		return "", nil
	}
	path := m.TranscriptPath(dir)
	if err := os.WriteFile(path, []byte(FormatTranscript(m.Segments)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}

// FormatTranscript renders segments as "[MM:SS] Speaker: words" lines.
// Timestamp and speaker come from the first word of each segment; minutes
// are not wrapped into hours.
func FormatTranscript(segments [][]Word) string {
	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		first := seg[0]
		speaker := first.Speaker
		if speaker == "" {
			speaker = DefaultSpeaker
		}
		secs := int(first.StartTime.Seconds)
		if secs < 0 {
			secs = 0
		}

		words := make([]string, len(seg))
		for i, w := range seg {
			words[i] = w.Word
		}
		fmt.Fprintf(&b, "[%02d:%02d] %s: %s\n", secs/60, secs%60, speaker, strings.Join(words, " "))
	}
	return b.String()
}
