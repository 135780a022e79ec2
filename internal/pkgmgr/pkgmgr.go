// Package pkgmgr installs required packages through apt.
package pkgmgr

import (
	"context"
	"fmt"
	osexec "os/exec"

	"go.uber.org/zap"

	"github.com/paperless-ops/paperless-mounter/internal/executor"
)

// Manager installs packages when their executable is not already on the
// search path.
type Manager struct {
	executor executor.CommandExecutor
	logger   *zap.Logger

	// lookPath resolves an executable on PATH, replaceable in tests
	lookPath func(file string) (string, error)
}

// NewManager creates a package manager wrapper
func NewManager(exec executor.CommandExecutor, logger *zap.Logger) *Manager {
	return &Manager{
		executor: exec,
		logger:   logger,
		lookPath: osexec.LookPath,
	}
}

// EnsureInstalled installs pkg via apt when binary is not resolvable on
// PATH. The presence check is the only idempotence guard; when the
// binary is missing this is exactly two apt-get calls, and either one
// failing is fatal.
func (m *Manager) EnsureInstalled(ctx context.Context, pkg, binary string) error {
	if path, err := m.lookPath(binary); err == nil {
		m.logger.Info("Package already installed, skipping",
			zap.String("package", pkg),
			zap.String("binary", path))
		return nil
	}

	m.logger.Info("Installing package", zap.String("package", pkg))

	env := map[string]string{"DEBIAN_FRONTEND": "noninteractive"}

	if _, err := m.executor.ExecuteWithEnv(ctx, "apt-get", env, "update"); err != nil {
		return fmt.Errorf("failed to refresh package index: %w", err)
	}

	if _, err := m.executor.ExecuteWithEnv(ctx, "apt-get", env, "install", "-y", pkg); err != nil {
		return fmt.Errorf("failed to install %s: %w", pkg, err)
	}

	m.logger.Info("Package installed", zap.String("package", pkg))
	return nil
}
