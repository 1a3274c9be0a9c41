// Package cli holds the interactive terminal models.
package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/dotr/internal/update"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	hashStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

// ConfirmModel asks whether a pending update should be applied, after
// showing the incoming commits.
type ConfirmModel struct {
	summary   update.Summary
	confirmed bool
	answered  bool
}

// NewConfirmModel creates the confirmation model for a summary.
func NewConfirmModel(summary update.Summary) ConfirmModel {
	return ConfirmModel{summary: summary}
}

// Confirmed reports the user's decision once the model has quit.
func (m ConfirmModel) Confirmed() bool {
	return m.answered && m.confirmed
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.confirmed = true
		m.answered = true

		return m, tea.Quit
	// The prompt advertises [y/N]: Enter takes the default and declines.
	case "n", "N", "enter", "esc", "q", "ctrl+c":
		m.confirmed = false
		m.answered = true

		return m, tea.Quit
	}

	return m, nil
}

func (m ConfirmModel) View() string {
	if m.answered {
		return ""
	}

	var b strings.Builder

	plural := "s"
	if m.summary.CommitsBehind == 1 {
		plural = ""
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("Dotfiles update: %d new commit%s on %s, %d file(s) changed",
		m.summary.CommitsBehind, plural, m.summary.Branch, m.summary.FilesChanged)))
	b.WriteString("\n\n")

	for _, c := range m.summary.Commits {
		b.WriteString(fmt.Sprintf("  %s %s\n", hashStyle.Render(c.Hash), c.Subject))
	}

	if len(m.summary.Commits) < m.summary.CommitsBehind {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more\n",
			m.summary.CommitsBehind-len(m.summary.Commits))))
	}

	b.WriteString("\n")
	b.WriteString(promptStyle.Render("Apply update? [y/N] "))

	return b.String()
}

// Confirm runs the confirmation prompt and returns the decision.
func Confirm(summary update.Summary) (bool, error) {
	program := tea.NewProgram(NewConfirmModel(summary))

	finalModel, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}

	model, ok := finalModel.(ConfirmModel)
	if !ok {
		return false, nil
	}

	return model.Confirmed(), nil
}
