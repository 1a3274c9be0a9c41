package cmd

import (
	"os"

	"github.com/inovacc/dotr/internal/application"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     application.AppName,
	Short:   "A dotfiles update manager",
	Version: application.Version,
	Long: `Dotr keeps a dotfiles checkout in sync with its remote. It checks the
remote for new configuration in the background, caches a pending-update
notification, surfaces it at shell-session start, and applies updates
interactively when the working tree is clean.

Add "dotr notify" to your shell startup file to get update notices once
per session.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
