package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/paperless-ops/paperless-mounter/internal/ui"
	"github.com/paperless-ops/paperless-mounter/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "paperless-mounter",
	Short: "Provision an SSHFS-backed data mount for Paperless",
	Long: `A tool for provisioning an SSHFS mount for a Paperless deployment
running in a Linux container. It installs sshfs, sets up SSH credentials,
persists the mount in fstab, and creates the Paperless directory layout.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Print help if no subcommand is provided
		if err := cmd.Help(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to display help: %v\n", err)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flag log-level: %v\n", err)
		os.Exit(1)
	}

	// Environment variables with prefix; dashed keys map to underscored
	// names (log-level becomes PAPERLESS_MOUNTER_LOG_LEVEL)
	viper.SetEnvPrefix("PAPERLESS_MOUNTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	logLevel := viper.GetString("log-level")
	if logLevel == "" {
		logLevel = "info"
	}

	logger, err := logging.NewLogger(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		// Ignore "inappropriate ioctl for device" errors which occur when syncing to stdout
		err := logger.Sync()
		if err != nil && !strings.Contains(err.Error(), "inappropriate ioctl for device") {
			fmt.Fprintf(os.Stderr, "Failed to sync logger: %v\n", err)
		}
	}()

	addCommands(logger)

	runRootCmd(logger)
}

func runRootCmd(logger *zap.Logger) {
	err := rootCmd.Execute()
	if err != nil {
		// Log error at debug level to avoid stack trace in normal output
		logger.Debug("Command execution failed", zap.Error(err))

		errMsg := strings.TrimSpace(err.Error())
		ui.Error("%s", errMsg)

		if strings.Contains(errMsg, "unknown command") {
			fmt.Fprintf(os.Stderr, "Run 'paperless-mounter --help' for usage information.\n")
		}

		os.Exit(1)
	}
}

func addCommands(logger *zap.Logger) {
	rootCmd.AddCommand(newProvisionCmd(logger))
	rootCmd.AddCommand(newCheckCmd(logger))
	rootCmd.AddCommand(newVersionCmd())

	// Remove default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Custom completion command without PowerShell - we don't support windows
	var completionCmd = &cobra.Command{
		Use:   "completion",
		Short: "Generate the autocompletion script for the specified shell",
		Long:  "Generate the autocompletion script for paperless-mounter for the specified shell.",
	}

	var bashCompletionCmd = &cobra.Command{
		Use:   "bash",
		Short: "Generate the autocompletion script for bash",
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenBashCompletion(os.Stdout)
		},
	}

	var zshCompletionCmd = &cobra.Command{
		Use:   "zsh",
		Short: "Generate the autocompletion script for zsh",
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenZshCompletion(os.Stdout)
		},
	}

	var fishCompletionCmd = &cobra.Command{
		Use:   "fish",
		Short: "Generate the autocompletion script for fish",
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootCmd.GenFishCompletion(os.Stdout, true)
		},
	}

	completionCmd.AddCommand(bashCompletionCmd)
	completionCmd.AddCommand(zshCompletionCmd)
	completionCmd.AddCommand(fishCompletionCmd)
	rootCmd.AddCommand(completionCmd)
}
