package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndList(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, name := range []string{"Kickoff", "Weekly Sync", "Retro"} {
		_, err := s.Record(ctx, Entry{
			MeetingID:       name + "-id",
			Name:            name,
			OutputPath:      "/out/" + name + ".mp4",
			SizeBytes:       int64(1024 * (i + 1)),
			DurationSeconds: 900.5,
			Elapsed:         90 * time.Second,
			CompletedAt:     base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Retro", all[0].Name, "newest first")
	assert.Equal(t, "Kickoff", all[2].Name)

	got := all[1]
	assert.Len(t, got.ID, 36)
	assert.Equal(t, "Weekly Sync-id", got.MeetingID)
	assert.Equal(t, int64(2048), got.SizeBytes)
	assert.Equal(t, 900.5, got.DurationSeconds)
	assert.Equal(t, 90*time.Second, got.Elapsed)
	assert.True(t, got.CompletedAt.Equal(base.Add(time.Hour)))

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestStore_RecordFillsDefaults(t *testing.T) {
	s := openTemp(t)
	before := time.Now().Add(-time.Second)

	e, err := s.Record(context.Background(), Entry{MeetingID: "m", Name: "n", OutputPath: "o"})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.True(t, e.CompletedAt.After(before))
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), Entry{MeetingID: "m", Name: "n", OutputPath: "o"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	entries, err := s.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
