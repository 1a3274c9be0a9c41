package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/dotr/internal/cli"
	"github.com/inovacc/dotr/internal/update"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch and apply the latest dotfiles from the remote",
	Long: `Probes the remote and, when new commits exist, shows them and asks for
confirmation before fast-forwarding the checkout. A dirty working tree
always blocks the update; commit or stash your local changes first.

Examples:
  dotr update
  dotr update --yes`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolP("yes", "y", false, "Apply without asking for confirmation")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	e, err := loadEnv()
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")

	applier := update.NewApplier(e.repo, e.store)
	applier.AutoApply = yes || e.cfg.AutoApply
	applier.Reload = e.reloadFunc()

	if term.IsTerminal(int(os.Stdin.Fd())) {
		applier.Confirm = cli.Confirm
	}

	finalState, err := applier.Run(ctx)

	switch finalState {
	case update.UpToDate:
		_, _ = fmt.Fprintln(os.Stdout, okStyle.Render("Dotfiles are up to date."))

		return err
	case update.Idle:
		_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render("Update skipped."))

		return nil
	case update.BlockedDirty:
		var dirty *update.DirtyTreeError

		if errors.As(err, &dirty) {
			_, _ = fmt.Fprintln(os.Stderr, errorStyle.Render("Update blocked: uncommitted local changes"))

			for _, path := range dirty.Paths {
				_, _ = fmt.Fprintf(os.Stderr, "  %s\n", path)
			}

			_, _ = fmt.Fprintln(os.Stderr, dimStyle.Render("Commit or stash these changes, then run 'dotr update' again."))
		}

		return fmt.Errorf("working tree is dirty")
	case update.Applied:
		_, _ = fmt.Fprintln(os.Stdout, okStyle.Render("Dotfiles updated."))

		if err != nil {
			// Applied, but a post-apply step (cache cleanup or the
			// reload collaborator) failed; the error says which.
			_, _ = fmt.Fprintln(os.Stderr, warningStyle.Render(err.Error()))

			return err
		}

		return nil
	default:
		if update.IsUnreachable(err) {
			return fmt.Errorf("remote unreachable - check your network and try again: %w", err)
		}

		return err
	}
}
