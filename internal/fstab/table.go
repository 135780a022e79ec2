package fstab

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paperless-ops/paperless-mounter/internal/executor"
)

// Table manages the persisted mount table file.
type Table struct {
	path     string
	executor executor.CommandExecutor
	logger   *zap.Logger

	backedUp bool
}

// NewTable creates a Table over the mount table at path.
func NewTable(path string, exec executor.CommandExecutor, logger *zap.Logger) *Table {
	return &Table{
		path:     path,
		executor: exec,
		logger:   logger,
	}
}

// Persist appends entry to the table unless an identical line is already
// present. The original table is backed up once per run before the first
// write. Returns true when the entry was appended.
func (t *Table) Persist(entry Entry) (bool, error) {
	line := entry.String()

	data, err := os.ReadFile(t.path)
	if err != nil {
		return false, fmt.Errorf("failed to read mount table %s: %w", t.path, err)
	}

	if AlreadyContains(string(data), line) {
		t.logger.Info("Mount entry already present, nothing to do",
			zap.String("table", t.path))
		return false, nil
	}

	if !t.backedUp {
		if err := t.backup(data); err != nil {
			return false, err
		}
		t.backedUp = true
	}

	content := string(data)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += line + "\n"

	if err := t.writeAtomic([]byte(content)); err != nil {
		return false, fmt.Errorf("failed to update mount table %s: %w", t.path, err)
	}

	t.logger.Info("Mount entry appended",
		zap.String("table", t.path),
		zap.String("entry", line))
	return true, nil
}

// backup writes a copy of the current table next to it.
func (t *Table) backup(data []byte) error {
	backupPath := t.path + ".bak"
	if err := os.WriteFile(backupPath, data, t.fileMode()); err != nil {
		return fmt.Errorf("failed to back up mount table to %s: %w", backupPath, err)
	}
	t.logger.Info("Mount table backed up", zap.String("backup", backupPath))
	return nil
}

// writeAtomic stages the new table in the same directory and renames it
// into place, so a crash mid-write cannot truncate the live table.
func (t *Table) writeAtomic(content []byte) error {
	staging := filepath.Join(filepath.Dir(t.path),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(t.path), uuid.New().String()))

	if err := os.WriteFile(staging, content, t.fileMode()); err != nil {
		return err
	}
	if err := os.Rename(staging, t.path); err != nil {
		if rmErr := os.Remove(staging); rmErr != nil {
			t.logger.Warn("Failed to remove staging file",
				zap.String("file", staging), zap.Error(rmErr))
		}
		return err
	}
	return nil
}

func (t *Table) fileMode() os.FileMode {
	if info, err := os.Stat(t.path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}

// Activate mounts everything described in the table via mount -a. There
// is no partial-success path: the table may hold unrelated entries and
// the workflow cannot tell which of them failed, so any error is fatal.
func (t *Table) Activate(ctx context.Context) error {
	t.logger.Info("Activating mounts")

	if _, err := t.executor.Execute(ctx, "mount", "-a"); err != nil {
		return fmt.Errorf("mount -a failed: %w", err)
	}

	t.logger.Info("Mounts activated")
	return nil
}

// Verify checks whether mountPoint is currently an active mount point.
// A failure here is best-effort information for the caller, which only
// warns: a local directory at the same path would make later directory
// creation appear to succeed.
func (t *Table) Verify(ctx context.Context, mountPoint string) error {
	if _, err := t.executor.Execute(ctx, "mountpoint", "-q", mountPoint); err != nil {
		return fmt.Errorf("%s is not an active mount point: %w", mountPoint, err)
	}
	return nil
}
