package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

const defaultInstallCommand = "./install.sh"

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Run the dotfiles installer script",
	Long: `Runs the repository's installer (symlink/file-placement script) in the
dotfiles directory. The command comes from install_command in the
configuration file and defaults to ./install.sh.

The installer is only ever run by this command, never by the update
flow.

Examples:
  dotr install
  dotr install --yes`,
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func runInstall(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	installCommand := e.cfg.InstallCommand
	if installCommand == "" {
		installCommand = defaultInstallCommand
	}

	if _, err := os.Stat(e.repoDir); err != nil {
		return fmt.Errorf("dotfiles directory %s does not exist", e.repoDir)
	}

	yes, _ := cmd.Flags().GetBool("yes")

	if !yes && !promptConfirm(fmt.Sprintf("Run '%s' in %s? [y/N]: ", installCommand, e.repoDir)) {
		_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render("Install cancelled."))

		return nil
	}

	install := exec.Command("sh", "-c", installCommand)
	install.Dir = e.repoDir
	install.Stdin = os.Stdin
	install.Stdout = os.Stdout
	install.Stderr = os.Stderr

	if err := install.Run(); err != nil {
		return fmt.Errorf("installer failed: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stdout, okStyle.Render("Installer finished."))

	return nil
}
