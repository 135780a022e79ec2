package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/paperless-ops/paperless-mounter/internal/config"
	"github.com/paperless-ops/paperless-mounter/internal/executor"
	"github.com/paperless-ops/paperless-mounter/internal/fstab"
	"github.com/paperless-ops/paperless-mounter/internal/layout"
	"github.com/paperless-ops/paperless-mounter/internal/pkgmgr"
	"github.com/paperless-ops/paperless-mounter/internal/preflight"
	"github.com/paperless-ops/paperless-mounter/internal/prompt"
	"github.com/paperless-ops/paperless-mounter/internal/sshkey"
	"github.com/paperless-ops/paperless-mounter/internal/ui"
)

func newProvisionCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision the SSHFS mount and Paperless directory layout",
		Long: `Runs the full provisioning workflow: environment preflight, interactive
configuration, sshfs installation, SSH key setup, fstab persistence,
mount activation, and Paperless directory creation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(logger)
		},
	}

	cmd.Flags().String("remote-user", config.DefaultRemoteUser, "Account on the file server")
	cmd.Flags().String("remote-host", config.DefaultRemoteHost, "Hostname or IP of the file server")
	cmd.Flags().String("remote-path", config.DefaultRemotePath, "Directory exported by the file server")
	cmd.Flags().String("mount-point", config.DefaultMountPoint, "Local mount point for the share")
	cmd.Flags().String("identity-file", config.DefaultIdentityFile, "SSH private key for the mount")
	cmd.Flags().String("fstab", config.DefaultFstabPath, "Mount table file to persist the entry in")
	cmd.Flags().Bool("non-interactive", false, "Skip all prompts and use flag/env values as-is")
	cmd.Flags().Bool("skip-key-transfer", false, "Never offer to copy the public key to the remote host")

	for _, flag := range []string{
		"remote-user", "remote-host", "remote-path", "mount-point",
		"identity-file", "fstab", "non-interactive", "skip-key-transfer",
	} {
		if err := viper.BindPFlag(flag, cmd.Flags().Lookup(flag)); err != nil {
			logger.Error("Failed to bind flag", zap.String("flag", flag), zap.Error(err))
		}
	}

	return cmd
}

func runProvision(logger *zap.Logger) error {
	// Flags are bound to viper in newProvisionCmd, so this resolves
	// flag, environment, and default values in one place.
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// One cancellation point for the whole sequence; an interrupt aborts
	// the in-flight external command and surfaces as a single error.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stage 1: preconditions, before any side effect
	pre := preflight.NewRunner(logger)
	if err := pre.Run(); err != nil {
		return err
	}
	ui.Success("Environment preconditions satisfied")

	if !cfg.NonInteractive {
		fuseOK, err := prompt.ConfirmFUSE()
		if err != nil {
			return err
		}
		if !fuseOK {
			return fmt.Errorf("FUSE passthrough is not enabled: enable the FUSE feature on this container and run provisioning again")
		}
	}

	// Stage 2: configuration
	if !cfg.NonInteractive {
		if err := prompt.Collect(cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		proceed, err := prompt.ConfirmSummary(cfg)
		if err != nil {
			return err
		}
		if !proceed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	logger.Info("Starting provisioning",
		zap.String("remote", fmt.Sprintf("%s@%s:%s", cfg.RemoteUser, cfg.RemoteHost, cfg.RemotePath)),
		zap.String("mountPoint", cfg.MountPoint))

	exec := executor.NewShellExecutor(logger)

	// Stage 3: sshfs package
	pkgMgr := pkgmgr.NewManager(exec, logger)
	if err := pkgMgr.EnsureInstalled(ctx, "sshfs", "sshfs"); err != nil {
		return err
	}
	ui.Success("sshfs is installed")

	// Stage 4: credentials
	keyProv := sshkey.NewProvisioner(exec, logger)
	if err := keyProv.EnsureKey(ctx, cfg.IdentityFile); err != nil {
		return err
	}
	ui.Success("SSH key ready at %s", cfg.IdentityFile)

	if !cfg.SkipKeyTransfer && !cfg.NonInteractive {
		transfer, err := prompt.ConfirmTransfer(cfg.RemoteUser, cfg.RemoteHost)
		if err != nil {
			return err
		}
		if transfer {
			if err := keyProv.Transfer(ctx, cfg.IdentityFile, cfg.RemoteUser, cfg.RemoteHost); err != nil {
				// The key may already be authorized out-of-band
				logger.Warn("Public key transfer failed", zap.Error(err))
				ui.Warn("Key transfer failed: %v", err)
				ui.Warn("Deploy %s to %s@%s manually before the mount can work",
					sshkey.PublicKeyPath(cfg.IdentityFile), cfg.RemoteUser, cfg.RemoteHost)
			} else {
				ui.Success("Public key deployed to %s@%s", cfg.RemoteUser, cfg.RemoteHost)
			}
		}
	}

	// Stage 5: mount table and activation
	if err := os.MkdirAll(cfg.MountPoint, 0755); err != nil {
		return fmt.Errorf("failed to create mount point %s: %w", cfg.MountPoint, err)
	}

	table := fstab.NewTable(cfg.FstabPath, exec, logger)
	entry := fstab.Entry{
		User:         cfg.RemoteUser,
		Host:         cfg.RemoteHost,
		RemotePath:   cfg.RemotePath,
		MountPoint:   cfg.MountPoint,
		IdentityFile: cfg.IdentityFile,
	}

	appended, err := table.Persist(entry)
	if err != nil {
		return err
	}
	if appended {
		ui.Success("Mount entry added to %s", cfg.FstabPath)
	} else {
		ui.Info("Mount entry already present in %s", cfg.FstabPath)
	}

	if err := table.Activate(ctx); err != nil {
		return err
	}

	if err := table.Verify(ctx, cfg.MountPoint); err != nil {
		logger.Warn("Mount verification failed", zap.Error(err))
		ui.Warn("%v", err)
		ui.Warn("Directories created next would land on the local disk, not the share")
	} else {
		ui.Success("Share mounted at %s", cfg.MountPoint)
	}

	// Stage 6: application layout
	initializer := layout.NewInitializer(logger)
	vars, err := initializer.Init(cfg.MountPoint)
	if err != nil {
		return err
	}

	ui.Success("Provisioning complete")
	fmt.Println()
	ui.Info("Add these to the Paperless environment configuration:")
	for _, v := range vars {
		ui.KeyValue(v.Name, v.Path)
	}
	fmt.Println()

	return nil
}
