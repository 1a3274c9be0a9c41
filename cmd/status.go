package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/inovacc/dotr/internal/update"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how the dotfiles checkout compares to its remote",
	Long: `Probes the remote synchronously and reports the current branch, the
tracked remote, whether the local checkout is behind, and when the last
check ran.

Examples:
  dotr status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	checker := update.NewChecker(e.repo, e.store, nil)

	st, err := checker.Status(context.Background())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(os.Stdout, boldStyle.Render("Dotfiles status"))
	_, _ = fmt.Fprintf(os.Stdout, "Directory:    %s\n", e.repoDir)

	if st.Branch != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Branch:       %s\n", st.Branch)
	}

	if st.RemoteURL != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Remote:       %s\n", st.RemoteURL)
	}

	switch st.Comparison {
	case update.ComparisonSynced:
		_, _ = fmt.Fprintf(os.Stdout, "Status:       %s\n", okStyle.Render("up to date"))

		if st.CommitsAhead > 0 {
			_, _ = fmt.Fprintf(os.Stdout, "              %s\n",
				dimStyle.Render(fmt.Sprintf("%d local commit(s) not on the remote", st.CommitsAhead)))
		}
	case update.ComparisonBehind:
		_, _ = fmt.Fprintf(os.Stdout, "Status:       %s\n",
			warningStyle.Render(fmt.Sprintf("behind by %d commit(s), %d file(s) changed",
				st.CommitsBehind, st.FilesChanged)))
		_, _ = fmt.Fprintf(os.Stdout, "              %s\n", dimStyle.Render("run 'dotr update' to apply"))
	default:
		_, _ = fmt.Fprintf(os.Stdout, "Status:       %s\n",
			warningStyle.Render("unknown (remote unreachable)"))
	}

	if st.Checked {
		_, _ = fmt.Fprintf(os.Stdout, "Last checked: %s\n", humanize.Time(st.LastChecked))
	} else {
		_, _ = fmt.Fprintln(os.Stdout, "Last checked: never")
	}

	return nil
}
