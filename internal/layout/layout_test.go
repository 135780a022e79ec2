package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializer_Init(t *testing.T) {
	mountPoint := t.TempDir()
	init := NewInitializer(zap.NewNop())

	vars, err := init.Init(mountPoint)
	require.NoError(t, err)

	want := []EnvVar{
		{Name: "PAPERLESS_CONSUMPTION_DIR", Path: filepath.Join(mountPoint, "consume")},
		{Name: "PAPERLESS_DATA_DIR", Path: filepath.Join(mountPoint, "data")},
		{Name: "PAPERLESS_MEDIA_DIR", Path: filepath.Join(mountPoint, "media")},
		{Name: "PAPERLESS_TRASH_DIR", Path: filepath.Join(mountPoint, "trash")},
	}
	assert.Equal(t, want, vars)

	for _, v := range vars {
		info, err := os.Stat(v.Path)
		require.NoError(t, err, "directory %s must exist", v.Path)
		assert.True(t, info.IsDir())
	}
}

func TestInitializer_InitIsIdempotent(t *testing.T) {
	mountPoint := t.TempDir()
	init := NewInitializer(zap.NewNop())

	first, err := init.Init(mountPoint)
	require.NoError(t, err)

	// Drop a file into one of the directories and run again: nothing may
	// be removed or recreated.
	marker := filepath.Join(mountPoint, "data", "index.db")
	require.NoError(t, os.WriteFile(marker, []byte("content"), 0644))

	second, err := init.Init(mountPoint)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestInitializer_InitMissingMountPoint(t *testing.T) {
	// MkdirAll creates intermediate directories, so a missing mount point
	// silently becomes a local tree. The layout step does not guard
	// against that; it only fails on real filesystem errors.
	mountPoint := filepath.Join(t.TempDir(), "not-yet-mounted")
	init := NewInitializer(zap.NewNop())

	_, err := init.Init(mountPoint)
	require.NoError(t, err)
}
