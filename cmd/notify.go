package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/inovacc/dotr/internal/update"
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Session-start hook: show pending updates, re-check when stale",
	Long: `Prints a one-line notice when a dotfiles update is known to be
pending, then spawns a detached background check when the last check is
older than the configured interval. Always exits zero so it is safe to
call from a shell startup file:

  # ~/.zshrc
  command -v dotr >/dev/null && dotr notify`,
	RunE: runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		// Never break the starting shell.
		return nil
	}

	// The cached notice is advisory: it may lag a concurrent check,
	// and the next cycle corrects it.
	if n, err := e.store.Notification(); err == nil && n != nil {
		_, _ = fmt.Fprintln(os.Stdout, warningStyle.Render(
			fmt.Sprintf("Dotfiles update available: %d commit(s) behind, %d file(s) changed. Run 'dotr update'.",
				n.CommitsBehind, n.FilesChanged)))
	}

	lastChecked, checked, err := e.store.LastChecked()
	if err != nil {
		return nil
	}

	if update.ShouldCheck(time.Now(), lastChecked, checked, e.cfg.Interval()) {
		spawnBackgroundCheck()
	}

	return nil
}

// spawnBackgroundCheck starts "dotr check --quiet" as a detached
// process and does not wait for it. The check is single-shot; session
// teardown may abandon it without consequence because all cache writes
// are atomic.
func spawnBackgroundCheck() {
	exe, err := os.Executable()
	if err != nil {
		return
	}

	check := exec.Command(exe, "check", "--quiet")
	check.Stdin = nil
	check.Stdout = nil
	check.Stderr = nil

	if err := check.Start(); err != nil {
		return
	}

	_ = check.Process.Release()
}
