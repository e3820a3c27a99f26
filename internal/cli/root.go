// Package cli implements the rig command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rig/internal/errors"
	"github.com/rileyhilliard/rig/internal/logger"
	"github.com/rileyhilliard/rig/internal/ui"
)

// Global flags
var (
	configFlag  string
	verboseFlag bool
	quietFlag   bool
	noColorFlag bool
)

// rootCmd is the base command all subcommands hang off.
var rootCmd = &cobra.Command{
	Use:   "rig",
	Short: "Set up a fresh workstation",
	Long: `rig provisions a fresh workstation: it installs prerequisite tools,
fetches your SSH keys from the network share, verifies them against your
git host, and clones your repositories.

Run 'rig bootstrap' for the full setup, or the individual commands
(keys, identity, clone) for a single phase.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			ui.DisableColors()
		}
		if verboseFlag {
			os.Setenv("RIG_DEBUG", "1")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress informational logging")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Config returns the --config flag value.
func Config() string {
	return configFlag
}

// newLogger builds the logger commands share, honoring --verbose and
// --quiet. Quiet wins when both are set.
func newLogger() logger.Logger {
	if quietFlag {
		return logger.Noop()
	}
	return logger.NewEnvLogger("rig")
}

// Execute runs the root command and exits with an appropriate code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		if code, ok := errors.GetExitCode(err); ok {
			os.Exit(code)
		}
		os.Exit(1)
	}
}
