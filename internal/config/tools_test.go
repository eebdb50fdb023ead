package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTools replaces PATH lookup with a fixed table and install locations
// with the given list.
func stubTools(t *testing.T, onPath map[string]string, locations []string) {
	t.Helper()
	origLook, origLoc := lookPath, commonLocations
	lookPath = func(name string) (string, error) {
		if p, ok := onPath[name]; ok {
			return p, nil
		}
		return "", errors.New("not found")
	}
	commonLocations = func() []string { return locations }
	t.Cleanup(func() { lookPath, commonLocations = origLook, origLoc })
}

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o755))
	return path
}

func TestResolveTools_Explicit(t *testing.T) {
	stubTools(t, nil, nil)
	tools, err := ResolveTools("/opt/ff/ffmpeg", "/opt/ff/ffprobe")
	require.NoError(t, err)
	assert.Equal(t, Tools{FFmpeg: "/opt/ff/ffmpeg", FFprobe: "/opt/ff/ffprobe"}, tools)
}

func TestResolveTools_FromPath(t *testing.T) {
	stubTools(t, map[string]string{"ffmpeg": "/usr/bin/ffmpeg", "ffprobe": "/usr/bin/ffprobe"}, nil)
	tools, err := ResolveTools("", "")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/ffmpeg", tools.FFmpeg)
	assert.Equal(t, "/usr/bin/ffprobe", tools.FFprobe)
}

func TestResolveTools_CommonLocationAndSibling(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := touch(t, filepath.Join(dir, "bin", "ffmpeg"+exeSuffix()))
	ffprobe := touch(t, filepath.Join(dir, "bin", "ffprobe"+exeSuffix()))
	stubTools(t, nil, []string{filepath.Join(dir, "missing", "ffmpeg"), ffmpeg})

	tools, err := ResolveTools("", "")
	require.NoError(t, err)
	assert.Equal(t, ffmpeg, tools.FFmpeg)
	assert.Equal(t, ffprobe, tools.FFprobe)
}

func TestResolveTools_ProbeFallsBackToFFmpeg(t *testing.T) {
	stubTools(t, nil, nil)
	ffmpeg := touch(t, filepath.Join(t.TempDir(), "ffmpeg"))

	tools, err := ResolveTools(ffmpeg, "")
	require.NoError(t, err)
	assert.Equal(t, ffmpeg, tools.FFprobe)
}

func TestResolveTools_NotFound(t *testing.T) {
	stubTools(t, nil, []string{filepath.Join(t.TempDir(), "ffmpeg")})
	_, err := ResolveTools("", "")
	assert.ErrorIs(t, err, ErrFFmpegNotFound)
}
