package files

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storepulse/internal/config"
)

func touch(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestDiscovery_FindWorkbooks(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	touch(t, filepath.Join(dir, "newer.xlsx"), base.Add(time.Hour))
	touch(t, filepath.Join(dir, "older.XLSX"), base)
	touch(t, filepath.Join(dir, "~$newer.xlsx"), base.Add(2*time.Hour))
	touch(t, filepath.Join(dir, "legacy.xls"), base)
	touch(t, filepath.Join(dir, "notes.csv"), base)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.xlsx"), 0755))

	found, err := NewDiscovery("").FindWorkbooks(dir)
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "older.XLSX", found[0].Name)
	assert.Equal(t, "newer.xlsx", found[1].Name)
	assert.Equal(t, int64(1), found[1].Size)

	latest, ok := GetLatestFile(found)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "newer.xlsx"), latest.Path)
}

func TestDiscovery_RelativeToBase(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "data"), 0755))
	touch(t, filepath.Join(base, "data", "stores.xlsx"), time.Now())

	found, err := NewDiscovery(base).FindWorkbooks("data")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(base, "data", "stores.xlsx"), found[0].Path)

	_, err = NewDiscovery(base).FindWorkbooks("missing")
	assert.Error(t, err)
}

func TestGetLatestFile_Empty(t *testing.T) {
	_, ok := GetLatestFile(nil)
	assert.False(t, ok)
}

func TestValidateWorkbook(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "stores.xlsx")
	touch(t, good, time.Now())
	csvFile := filepath.Join(dir, "stores.csv")
	touch(t, csvFile, time.Now())
	lock := filepath.Join(dir, "~$stores.xlsx")
	touch(t, lock, time.Now())
	subdir := filepath.Join(dir, "folder.xlsx")
	require.NoError(t, os.Mkdir(subdir, 0755))

	tests := []struct {
		name        string
		path        string
		wantErr     bool
		notExist    bool
		notWorkbook bool
	}{
		{name: "valid workbook", path: good},
		{name: "missing file", path: filepath.Join(dir, "none.xlsx"), wantErr: true, notExist: true},
		{name: "wrong extension", path: csvFile, wantErr: true, notWorkbook: true},
		{name: "excel lock file", path: lock, wantErr: true, notWorkbook: true},
		{name: "directory", path: subdir, wantErr: true, notWorkbook: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWorkbook(tt.path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.notExist, errors.Is(err, os.ErrNotExist))
			assert.Equal(t, tt.notWorkbook, errors.Is(err, ErrNotWorkbook))
		})
	}
}

func TestManager_ResolveDataset(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	touch(t, filepath.Join(dir, "march.xlsx"), base)
	touch(t, filepath.Join(dir, "april.xlsx"), base.Add(24*time.Hour))

	configured := filepath.Join(dir, "dashboard_ready_scaled.xlsx")

	tests := []struct {
		name       string
		setup      func(t *testing.T)
		configured string
		discover   bool
		want       string
	}{
		{
			name:       "missing without discovery keeps configured path",
			configured: configured,
			want:       configured,
		},
		{
			name:       "missing with discovery picks newest workbook",
			configured: configured,
			discover:   true,
			want:       filepath.Join(dir, "april.xlsx"),
		},
		{
			name:       "existing configured path wins",
			configured: filepath.Join(dir, "march.xlsx"),
			discover:   true,
			want:       filepath.Join(dir, "march.xlsx"),
		},
		{
			name:       "invalid file is not replaced",
			configured: filepath.Join(dir, "notes.csv"),
			discover:   true,
			setup: func(t *testing.T) {
				touch(t, filepath.Join(dir, "notes.csv"), base)
			},
			want: filepath.Join(dir, "notes.csv"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(t)
			}
			var logs bytes.Buffer
			m := NewManager(config.PathsConfig{DataDir: dir}, slog.New(slog.NewJSONHandler(&logs, nil)))

			assert.Equal(t, tt.want, m.ResolveDataset(tt.configured, tt.discover))
		})
	}
}

func TestManager_ResolveDataset_EmptyDataDir(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	m := NewManager(config.PathsConfig{DataDir: dir}, slog.New(slog.NewJSONHandler(&logs, nil)))

	configured := filepath.Join(dir, "missing.xlsx")
	assert.Equal(t, configured, m.ResolveDataset(configured, true))
	assert.Contains(t, logs.String(), "No workbook found")
}

func TestManager_EnsureDirectories(t *testing.T) {
	root := t.TempDir()
	paths := config.PathsConfig{
		DataDir:    root,
		ExportsDir: filepath.Join(root, "exports", "csv"),
		LogsDir:    filepath.Join(root, "logs"),
	}
	m := NewManager(paths, slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))

	require.NoError(t, m.EnsureDirectories())
	require.NoError(t, m.EnsureDirectories())

	for _, dir := range []string{paths.ExportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
