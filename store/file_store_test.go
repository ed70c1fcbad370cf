package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/josephgoksu/daytrack/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMap() models.TasksByDate {
	return models.TasksByDate{
		"2026-10-18": {
			{ID: 1760745600000, Text: "Write report"},
			{ID: 1760745600001, Text: "Standup", Time: "09:30", Important: true},
		},
		"2026-10-17": {{ID: 1760659200000, Text: "Review PR", Completed: true}},
	}
}

func setupTestStore(t *testing.T, format string) (*FileStore, afero.Fs) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	s, err := NewFileStore(fsys, "/data/tasks."+format, FileOptions{Format: format, VerifyChecksum: true})
	require.NoError(t, err)
	return s, fsys
}

func TestFileStore_MissingFileLoadsEmpty(t *testing.T) {
	s, _ := setupTestStore(t, "json")

	m, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

func TestFileStore_SaveLoadFormats(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			s, fsys := setupTestStore(t, format)
			ctx := context.Background()

			require.NoError(t, s.Save(ctx, sampleMap()))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleMap(), got)

			exists, err := afero.Exists(fsys, s.Path()+checksumSuffix)
			require.NoError(t, err)
			assert.True(t, exists, "checksum sidecar should be written")

			tmp, _ := afero.Exists(fsys, s.Path()+tempSuffix)
			assert.False(t, tmp, "temporary file should be cleaned up")
		})
	}
}

func TestFileStore_SaveOverwritesWholesale(t *testing.T) {
	s, _ := setupTestStore(t, "json")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleMap()))
	require.NoError(t, s.Save(ctx, models.TasksByDate{"2026-10-19": {{ID: 9, Text: "only"}}}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-19"}, got.SortedDates())
}

func TestFileStore_JSONShape(t *testing.T) {
	s, fsys := setupTestStore(t, "json")
	require.NoError(t, s.Save(context.Background(), models.TasksByDate{
		"2026-10-18": {{ID: 5, Text: "Write report"}},
	}))

	data, err := afero.ReadFile(fsys, s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"2026-10-18":[{"id":5,"text":"Write report","completed":false,"time":"","important":false}]}`, string(data))
}

func TestFileStore_ChecksumMismatch(t *testing.T) {
	s, fsys := setupTestStore(t, "json")
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleMap()))

	require.NoError(t, afero.WriteFile(fsys, s.Path(), []byte(`{"2026-10-18":[]}`), 0o644))

	_, err := s.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChecksumMismatch))

	// without verification the edited file loads
	lenient, err := NewFileStore(fsys, s.Path(), FileOptions{Format: "json"})
	require.NoError(t, err)
	m, err := lenient.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, m, "2026-10-18")
}

func TestFileStore_MalformedData(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := filepath.Join("/data", "tasks.json")
	require.NoError(t, afero.WriteFile(fsys, path, []byte(`{not json`), 0o644))

	s, err := NewFileStore(fsys, path, FileOptions{Format: "json"})
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_EmptyFileLoadsEmpty(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/tasks.json", []byte("  \n"), 0o644))

	s, err := NewFileStore(fsys, "/data/tasks.json", FileOptions{})
	require.NoError(t, err)

	m, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestNewFileStore_UnsupportedFormat(t *testing.T) {
	_, err := NewFileStore(afero.NewMemMapFs(), "/data/tasks.xml", FileOptions{Format: "xml"})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFileStore_CancelledContext(t *testing.T) {
	s, _ := setupTestStore(t, "json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Save(ctx, sampleMap()))
	_, err := s.Load(ctx)
	assert.Error(t, err)
}

func TestFileStore_OsFsUsesLock(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(afero.NewOsFs(), filepath.Join(dir, "tasks.json"), FileOptions{VerifyChecksum: true})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	require.NotNil(t, s.flk)

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleMap()))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleMap(), got)
}
