package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Default values
const (
	DefaultLogLevel     = "info"
	DefaultRemoteUser   = "paperless"
	DefaultRemoteHost   = "192.168.1.10"
	DefaultRemotePath   = "/srv/paperless_data"
	DefaultMountPoint   = "/mnt/paperless_data"
	DefaultIdentityFile = "/root/.ssh/id_rsa_paperless_share"
	DefaultFstabPath    = "/etc/fstab"
)

// Config holds the provisioning configuration. The five remote-mount
// fields are the operator-facing settings; the rest control workflow
// behavior.
type Config struct {
	RemoteUser   string
	RemoteHost   string
	RemotePath   string
	MountPoint   string
	IdentityFile string

	FstabPath       string
	LogLevel        string
	NonInteractive  bool // Skip prompts, take flag/env/default values as-is
	SkipKeyTransfer bool // Never offer ssh-copy-id
}

// Validate checks if the configuration is valid. Only presence is
// checked; host reachability and path shape are left to the tools that
// consume the values.
func (c *Config) Validate() error {
	if c.RemoteUser == "" {
		return fmt.Errorf("remote-user is required")
	}
	if c.RemoteHost == "" {
		return fmt.Errorf("remote-host is required")
	}
	if c.RemotePath == "" {
		return fmt.Errorf("remote-path is required")
	}
	if c.MountPoint == "" {
		return fmt.Errorf("mount-point is required")
	}
	if c.IdentityFile == "" {
		return fmt.Errorf("identity-file is required")
	}
	return nil
}

// setDefaults sets default values for unset fields in the Config
func (c *Config) setDefaults() {
	if c.RemoteUser == "" {
		c.RemoteUser = DefaultRemoteUser
	}
	if c.RemoteHost == "" {
		c.RemoteHost = DefaultRemoteHost
	}
	if c.RemotePath == "" {
		c.RemotePath = DefaultRemotePath
	}
	if c.MountPoint == "" {
		c.MountPoint = DefaultMountPoint
	}
	if c.IdentityFile == "" {
		c.IdentityFile = DefaultIdentityFile
	}
	if c.FstabPath == "" {
		c.FstabPath = DefaultFstabPath
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// LoadConfig loads configuration from viper. Values resolve through the
// usual viper precedence: an explicitly set flag wins, then a
// PAPERLESS_MOUNTER_* environment variable, then the flag default.
// Dashed keys map to underscored env names (remote-user becomes
// PAPERLESS_MOUNTER_REMOTE_USER).
func LoadConfig() (*Config, error) {
	viper.SetEnvPrefix("PAPERLESS_MOUNTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	c := &Config{
		RemoteUser:      viper.GetString("remote-user"),
		RemoteHost:      viper.GetString("remote-host"),
		RemotePath:      viper.GetString("remote-path"),
		MountPoint:      viper.GetString("mount-point"),
		IdentityFile:    viper.GetString("identity-file"),
		FstabPath:       viper.GetString("fstab"),
		LogLevel:        viper.GetString("log-level"),
		NonInteractive:  viper.GetBool("non-interactive"),
		SkipKeyTransfer: viper.GetBool("skip-key-transfer"),
	}

	c.setDefaults()
	return c, c.Validate()
}
