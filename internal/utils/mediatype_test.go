package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal ISO BMFF header: size, "ftyp", major brand "isom"
var mp4Header = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'm', 'p', '4', '1'}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDetectMediaType(t *testing.T) {
	path := writeTemp(t, "video.mp4", mp4Header)

	kind, err := DetectMediaType(path)
	require.NoError(t, err)
	assert.Equal(t, "mp4", kind.Extension)
	assert.True(t, IsVideoFile(path))
}

func TestIsVideoFile_NotVideo(t *testing.T) {
	assert.False(t, IsVideoFile(writeTemp(t, "notes.txt", []byte("hello world, not a video"))))
	assert.False(t, IsVideoFile(writeTemp(t, "empty.mp4", nil)))
	assert.False(t, IsVideoFile(filepath.Join(t.TempDir(), "missing.mp4")))
}
