package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/inovacc/dotr/internal/update"
	"github.com/spf13/cobra"
)

const checkLogName = "check.log"

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the remote for new dotfiles now",
	Long: `Probes the remote immediately, regardless of the staleness interval,
and updates the pending-update notification cache.

With --quiet nothing is written to the terminal; outcomes go to the
check log in the cache directory instead. This is the mode the
session-start hook spawns in the background.

Examples:
  dotr check
  dotr check --quiet`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("quiet", "q", false, "No terminal output; log to the cache directory")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	ctx := context.Background()

	quiet, _ := cmd.Flags().GetBool("quiet")

	if quiet {
		runQuietCheck(ctx, e)

		// Background-path failures never reach the invoking session.
		return nil
	}

	checker := update.NewChecker(e.repo, e.store, nil)

	result, err := checker.CheckOnce(ctx)
	if err != nil {
		if update.IsUnreachable(err) {
			return fmt.Errorf("remote unreachable - comparison unknown: %w", err)
		}

		return err
	}

	if result.UpToDate() {
		_, _ = fmt.Fprintln(os.Stdout, okStyle.Render("Dotfiles are up to date."))

		return nil
	}

	_, _ = fmt.Fprintln(os.Stdout, warningStyle.Render(
		fmt.Sprintf("Update available: %d commit(s) behind, %d file(s) changed.",
			result.CommitsBehind, result.FilesChanged)))
	_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render("Run 'dotr update' to apply."))

	return nil
}

func runQuietCheck(ctx context.Context, e *env) {
	var logger *log.Logger

	logPath := filepath.Join(e.store.Dir(), checkLogName)

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		defer func() { _ = file.Close() }()

		logger = log.NewWithOptions(file, log.Options{
			ReportTimestamp: true,
			Prefix:          "check",
		})
	}

	checker := update.NewChecker(e.repo, e.store, logger)

	_, _ = checker.CheckOnce(ctx)
}
