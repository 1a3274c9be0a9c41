package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/inovacc/dotr/internal/docs"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs [name]",
	Short: "View the documentation shipped with the dotfiles",
	Long: `Finds the documentation files in the dotfiles directory (README,
INSTALL, CHEATSHEET, USAGE and similar) and renders the requested one.
Markdown files are rendered for the terminal; anything else is printed
as-is. Without a name the highest-priority file (usually the README)
is shown.

Examples:
  dotr docs
  dotr docs --list
  dotr docs cheatsheet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.Flags().BoolP("list", "l", false, "List available documentation files")
}

func runDocs(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	if list, _ := cmd.Flags().GetBool("list"); list {
		files, err := docs.Discover(e.repoDir)
		if err != nil {
			return err
		}

		if len(files) == 0 {
			_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render("No documentation files found."))

			return nil
		}

		for _, f := range files {
			_, _ = fmt.Fprintln(os.Stdout, f.Name)
		}

		return nil
	}

	var query string
	if len(args) > 0 {
		query = args[0]
	}

	file, err := docs.Find(e.repoDir, query)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(file.Path)
	if err != nil {
		return err
	}

	if !file.IsMarkdown() {
		_, _ = fmt.Fprint(os.Stdout, string(content))

		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}

	rendered, err := renderer.Render(string(content))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprint(os.Stdout, rendered)

	return nil
}
