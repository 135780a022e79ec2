package fstab

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/paperless-ops/paperless-mounter/internal/executor"
)

var testEntry = Entry{
	User:         "paperless",
	Host:         "192.168.1.10",
	RemotePath:   "/srv/paperless_data",
	MountPoint:   "/mnt/paperless_data",
	IdentityFile: "/root/.ssh/id_rsa_paperless_share",
}

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fstab")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTable_PersistAppendsOnce(t *testing.T) {
	path := writeTable(t, "proc /proc proc defaults 0 0\n")
	table := NewTable(path, executor.NewMockCommandExecutor(), zap.NewNop())

	appended, err := table.Persist(testEntry)
	require.NoError(t, err)
	assert.True(t, appended)

	// Second persist of the identical entry is a no-op
	appended, err = table.Persist(testEntry)
	require.NoError(t, err)
	assert.False(t, appended)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), testEntry.String()),
		"entry must appear exactly once")
	assert.True(t, strings.HasPrefix(string(data), "proc /proc proc defaults 0 0\n"),
		"existing entries must be preserved")
	assert.True(t, strings.HasSuffix(string(data), "\n"), "table must end with a newline")
}

func TestTable_PersistBacksUpBeforeFirstWrite(t *testing.T) {
	original := "proc /proc proc defaults 0 0\n"
	path := writeTable(t, original)
	table := NewTable(path, executor.NewMockCommandExecutor(), zap.NewNop())

	_, err := table.Persist(testEntry)
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err, "backup must exist after a write")
	assert.Equal(t, original, string(backup), "backup must hold the pre-write table")
}

func TestTable_PersistNoBackupWhenNothingChanges(t *testing.T) {
	path := writeTable(t, testEntry.String()+"\n")
	table := NewTable(path, executor.NewMockCommandExecutor(), zap.NewNop())

	appended, err := table.Persist(testEntry)
	require.NoError(t, err)
	assert.False(t, appended)

	_, err = os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err), "no backup may be taken on a no-op run")
}

func TestTable_PersistHandlesMissingTrailingNewline(t *testing.T) {
	path := writeTable(t, "proc /proc proc defaults 0 0")
	table := NewTable(path, executor.NewMockCommandExecutor(), zap.NewNop())

	_, err := table.Persist(testEntry)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "proc /proc proc defaults 0 0\n"+testEntry.String()+"\n")
}

func TestTable_PersistMissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fstab")
	table := NewTable(path, executor.NewMockCommandExecutor(), zap.NewNop())

	_, err := table.Persist(testEntry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read mount table")
}

func TestTable_PersistLeavesNoStagingFiles(t *testing.T) {
	path := writeTable(t, "")
	table := NewTable(path, executor.NewMockCommandExecutor(), zap.NewNop())

	_, err := table.Persist(testEntry)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"),
			"staging file %s left behind", e.Name())
	}
}

func TestTable_Activate(t *testing.T) {
	mock := executor.NewMockCommandExecutor()
	mock.AddCommandResult("mount -a", "", nil)
	table := NewTable("/etc/fstab", mock, zap.NewNop())

	require.NoError(t, table.Activate(context.Background()))
	assert.Contains(t, mock.ExecutedCommands, "mount -a")
}

func TestTable_ActivateFailureIsFatal(t *testing.T) {
	mock := executor.NewMockCommandExecutor()
	mock.AddCommandResult("mount -a", "", errors.New("read: connection reset by peer"))
	table := NewTable("/etc/fstab", mock, zap.NewNop())

	err := table.Activate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mount -a failed")
}

func TestTable_Verify(t *testing.T) {
	tests := []struct {
		name      string
		mockErr   error
		expectErr bool
	}{
		{
			name: "active mount point",
		},
		{
			name:      "not a mount point",
			mockErr:   errors.New("exit status 32"),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := executor.NewMockCommandExecutor()
			mock.AddCommandResult("mountpoint -q /mnt/paperless_data", "", tt.mockErr)
			table := NewTable("/etc/fstab", mock, zap.NewNop())

			err := table.Verify(context.Background(), "/mnt/paperless_data")
			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "not an active mount point")
			} else {
				require.NoError(t, err)
			}
		})
	}
}
