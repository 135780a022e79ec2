// Package prompt gathers the provisioning configuration interactively.
package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/paperless-ops/paperless-mounter/internal/config"
	"github.com/paperless-ops/paperless-mounter/internal/ui"
)

// Collect walks the operator through the five mount settings. Each input
// is pre-filled with the current value (flag, environment, or built-in
// default), so accepting a prompt unchanged keeps that value.
func Collect(cfg *config.Config) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Remote user").
				Description("Account on the file server that owns the Paperless data").
				Value(&cfg.RemoteUser).
				Validate(required("remote user")),
			huh.NewInput().
				Title("Remote host").
				Description("Hostname or IP of the file server").
				Value(&cfg.RemoteHost).
				Validate(required("remote host")),
			huh.NewInput().
				Title("Remote path").
				Description("Directory exported by the file server").
				Value(&cfg.RemotePath).
				Validate(required("remote path")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Local mount point").
				Description("Where the remote share appears in this container").
				Value(&cfg.MountPoint).
				Validate(required("mount point")),
			huh.NewInput().
				Title("SSH private key path").
				Description("Key used for the sshfs connection; created if missing").
				Value(&cfg.IdentityFile).
				Validate(required("private key path")),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to collect configuration: %w", err)
	}
	return nil
}

// ConfirmSummary echoes the final configuration and asks for explicit
// approval. This is the last abort point before anything is modified.
func ConfirmSummary(cfg *config.Config) (bool, error) {
	fmt.Println()
	ui.Info("Provisioning with the following configuration:")
	ui.KeyValue("Remote user", cfg.RemoteUser)
	ui.KeyValue("Remote host", cfg.RemoteHost)
	ui.KeyValue("Remote path", cfg.RemotePath)
	ui.KeyValue("Local mount point", cfg.MountPoint)
	ui.KeyValue("SSH private key", cfg.IdentityFile)
	fmt.Println()

	var proceed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Proceed with provisioning?").
				Value(&proceed),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}
	return proceed, nil
}

// ConfirmFUSE asks whether the container has FUSE passthrough enabled.
// This is advisory only: an honest "yes" here is not verified, and a
// wrong answer surfaces later when mount -a fails.
func ConfirmFUSE() (bool, error) {
	var enabled bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Is FUSE passthrough enabled for this container?").
				Description("In Proxmox: container Options > Features > FUSE. The mount step will fail without it.").
				Value(&enabled),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}
	return enabled, nil
}

// ConfirmTransfer asks whether to push the public key to the remote host
// with ssh-copy-id.
func ConfirmTransfer(user, host string) (bool, error) {
	var transfer bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Copy the public key to %s@%s now?", user, host)).
				Description("Skip this if the key is already in authorized_keys on the server.").
				Value(&transfer),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}
	return transfer, nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
