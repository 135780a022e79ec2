// Package layout creates the Paperless directory tree on the mount.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// EnvVar pairs a Paperless environment variable with the directory it
// should point at.
type EnvVar struct {
	Name string
	Path string
}

// Directory names and the environment variables Paperless reads for them.
var directories = []struct {
	name   string
	envVar string
}{
	{"consume", "PAPERLESS_CONSUMPTION_DIR"},
	{"data", "PAPERLESS_DATA_DIR"},
	{"media", "PAPERLESS_MEDIA_DIR"},
	{"trash", "PAPERLESS_TRASH_DIR"},
}

// Initializer creates the application directory layout.
type Initializer struct {
	logger *zap.Logger
}

// NewInitializer creates a layout initializer
func NewInitializer(logger *zap.Logger) *Initializer {
	return &Initializer{logger: logger}
}

// Init creates the four Paperless directories under mountPoint and
// returns the environment variable assignments for them. Creation is
// idempotent; existing directories are left as they are. This step does
// not detect a mount that never attached: directory creation succeeds on
// a plain local directory just the same.
func (i *Initializer) Init(mountPoint string) ([]EnvVar, error) {
	vars := make([]EnvVar, 0, len(directories))

	for _, d := range directories {
		path := filepath.Join(mountPoint, d.name)
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", path, err)
		}
		i.logger.Debug("Directory ready", zap.String("path", path))
		vars = append(vars, EnvVar{Name: d.envVar, Path: path})
	}

	return vars, nil
}
