package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paperless-ops/paperless-mounter/internal/preflight"
	"github.com/paperless-ops/paperless-mounter/internal/ui"
)

func newCheckCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check environment preconditions without changing anything",
		Long: `Validates privilege level, OS family, and FUSE device availability.
Nothing is installed or modified; use this before a provisioning run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(logger)
		},
		SilenceUsage: true,
	}

	return cmd
}

func runCheck(logger *zap.Logger) error {
	pre := preflight.NewRunner(logger)
	runErr := pre.Run()

	printCheckSummary(pre.GetCheckResults())

	if runErr != nil {
		return fmt.Errorf("precondition check failed: %w", runErr)
	}

	ui.Success("All precondition checks passed")
	ui.Muted("Note: the FUSE device probe is advisory; a present /dev/fuse does not guarantee passthrough works until the mount is attempted.")
	return nil
}

func printCheckSummary(results map[string]int) {
	fmt.Printf("\n%s\n", strings.Repeat("=", 60))
	fmt.Printf("PRECONDITION CHECK RESULTS\n")
	fmt.Printf("%s\n", strings.Repeat("=", 60))

	// Fixed order so the output is stable
	for _, check := range []string{
		preflight.CheckSuperuser,
		preflight.CheckOSRelease,
		preflight.CheckOSFamily,
		preflight.CheckFuseDevice,
	} {
		var statusSymbol, statusText string

		switch results[check] {
		case preflight.CheckSuccess:
			statusSymbol = "✓"
			statusText = "SUCCESS"
		case preflight.CheckFailed:
			statusSymbol = "✗"
			statusText = "FAILED"
		case preflight.CheckNotTested:
			statusSymbol = "?"
			statusText = "NOT TESTED"
		}

		fmt.Printf("%-30s %s  %s\n", check+":", statusSymbol, statusText)
	}

	fmt.Printf("%s\n\n", strings.Repeat("=", 60))
}
