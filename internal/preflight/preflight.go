// Package preflight validates the environment before any provisioning
// side effect is applied.
package preflight

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Check result constants
const (
	CheckFailed    = 0
	CheckSuccess   = 1
	CheckNotTested = -1
)

// Check names in the order they run
const (
	CheckSuperuser  = "Superuser"
	CheckOSRelease  = "OS Release"
	CheckOSFamily   = "OS Family"
	CheckFuseDevice = "FUSE Device"
)

// Runner performs the environment precondition checks. The probe inputs
// are fields so tests can point them at fixtures instead of the live
// system.
type Runner struct {
	logger *zap.Logger

	// Geteuid reports the effective UID of the caller
	Geteuid func() int
	// OSReleasePath is the os-release file consulted for the OS identity
	OSReleasePath string
	// FuseDevicePath is the device node expected when FUSE passthrough works
	FuseDevicePath string

	checkResults map[string]int
}

// NewRunner creates a preflight runner probing the live system.
func NewRunner(logger *zap.Logger) *Runner {
	r := &Runner{
		logger:         logger,
		Geteuid:        os.Geteuid,
		OSReleasePath:  "/etc/os-release",
		FuseDevicePath: "/dev/fuse",
		checkResults:   make(map[string]int),
	}
	r.resetResults()
	return r
}

// GetCheckResults returns the results of the checks performed
func (r *Runner) GetCheckResults() map[string]int {
	return r.checkResults
}

func (r *Runner) resetResults() {
	for _, name := range []string{CheckSuperuser, CheckOSRelease, CheckOSFamily, CheckFuseDevice} {
		r.checkResults[name] = CheckNotTested
	}
}

func (r *Runner) record(name string, ok bool) {
	if ok {
		r.checkResults[name] = CheckSuccess
	} else {
		r.checkResults[name] = CheckFailed
	}
}

// Run executes the precondition checks in order and returns the first
// fatal failure. Nothing has been modified when an error is returned;
// checks after a failed one stay NOT TESTED. The FUSE device probe is
// advisory: a missing device node is recorded but never fatal, because
// the operator confirmation is the authoritative answer there.
func (r *Runner) Run() error {
	r.resetResults()

	if uid := r.Geteuid(); uid != 0 {
		r.record(CheckSuperuser, false)
		return fmt.Errorf("this tool must run as root (effective UID %d)", uid)
	}
	r.record(CheckSuperuser, true)
	r.logger.Debug("Superuser check passed")

	data, err := os.ReadFile(r.OSReleasePath)
	if err != nil {
		r.record(CheckOSRelease, false)
		return fmt.Errorf("cannot determine OS identity: %w", err)
	}
	r.record(CheckOSRelease, true)

	fields := ParseOSRelease(string(data))
	if !IsDebianFamily(fields["ID"], fields["ID_LIKE"]) {
		r.record(CheckOSFamily, false)
		return fmt.Errorf("unsupported OS %q: this workflow is validated on Debian-family systems only", fields["ID"])
	}
	r.record(CheckOSFamily, true)
	r.logger.Debug("OS family check passed",
		zap.String("id", fields["ID"]),
		zap.String("idLike", fields["ID_LIKE"]))

	if _, err := os.Stat(r.FuseDevicePath); err != nil {
		r.record(CheckFuseDevice, false)
		r.logger.Warn("FUSE device not present; the mount step will fail unless passthrough is enabled",
			zap.String("device", r.FuseDevicePath),
			zap.Error(err))
	} else {
		r.record(CheckFuseDevice, true)
	}

	return nil
}

// ParseOSRelease parses os-release content into a key/value map.
// Comment lines and malformed lines are skipped; surrounding quotes on
// values are stripped.
func ParseOSRelease(data string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"'`)
		fields[strings.TrimSpace(key)] = value
	}
	return fields
}

// IsDebianFamily reports whether the OS identity belongs to the Debian
// family, either directly or through ID_LIKE (e.g. Ubuntu).
func IsDebianFamily(id, idLike string) bool {
	if id == "debian" {
		return true
	}
	for _, like := range strings.Fields(idLike) {
		if like == "debian" {
			return true
		}
	}
	return false
}
