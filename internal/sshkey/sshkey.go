// Package sshkey provisions the SSH credential used for the sshfs mount.
package sshkey

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/paperless-ops/paperless-mounter/internal/executor"
)

// Provisioner manages the key pair backing the mount
type Provisioner struct {
	executor executor.CommandExecutor
	logger   *zap.Logger
}

// NewProvisioner creates a new key provisioner
func NewProvisioner(exec executor.CommandExecutor, logger *zap.Logger) *Provisioner {
	return &Provisioner{
		executor: exec,
		logger:   logger,
	}
}

// EnsureKey generates a 4096-bit RSA key pair with no passphrase at path
// unless a private key already exists there. An existing key is never
// touched, regenerated, or rotated.
func (p *Provisioner) EnsureKey(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err == nil {
		p.logger.Info("SSH key already exists, skipping generation",
			zap.String("path", path))
		return nil
	}

	keyDir := filepath.Dir(path)
	if err := os.MkdirAll(keyDir, 0700); err != nil {
		return fmt.Errorf("failed to create key directory %s: %w", keyDir, err)
	}

	p.logger.Info("Generating new SSH key pair", zap.String("path", path))

	_, err := p.executor.Execute(ctx, "ssh-keygen",
		"-t", "rsa",
		"-b", "4096",
		"-N", "",
		"-f", path,
		"-C", "paperless-mounter")
	if err != nil {
		return fmt.Errorf("failed to generate SSH key: %w", err)
	}

	// ssh-keygen exiting zero without writing the file would leave a
	// broken mount entry later, so confirm it landed.
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("key generation reported success but no key found at %s: %w", path, err)
	}

	p.logger.Info("SSH key pair generated",
		zap.String("privateKey", path),
		zap.String("publicKey", PublicKeyPath(path)))
	return nil
}

// Transfer deploys the public key to the remote host's authorized_keys
// with ssh-copy-id. Failure here is not fatal to the workflow: the key
// may already be deployed out-of-band, and the caller only warns.
func (p *Provisioner) Transfer(ctx context.Context, identityFile, user, host string) error {
	target := fmt.Sprintf("%s@%s", user, host)
	p.logger.Info("Copying public key to remote host",
		zap.String("target", target))

	_, err := p.executor.Execute(ctx, "ssh-copy-id",
		"-i", PublicKeyPath(identityFile),
		target)
	if err != nil {
		return fmt.Errorf("failed to copy public key to %s: %w", target, err)
	}

	p.logger.Info("Public key deployed", zap.String("target", target))
	return nil
}

// PublicKeyPath returns the public half's path for a private key path.
func PublicKeyPath(identityFile string) string {
	return identityFile + ".pub"
}
