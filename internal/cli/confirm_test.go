package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/dotr/internal/git"
	"github.com/inovacc/dotr/internal/update"
	"github.com/stretchr/testify/assert"
)

func testSummary() update.Summary {
	return update.Summary{
		Branch:        "main",
		CommitsBehind: 2,
		FilesChanged:  3,
		Commits: []git.Commit{
			{Hash: "abc1234", Subject: "tighten zsh prompt"},
			{Hash: "def5678", Subject: "add tmux popup binding"},
		},
	}
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmModelAccept(t *testing.T) {
	model := NewConfirmModel(testSummary())

	updated, cmd := model.Update(key("y"))
	assert.NotNil(t, cmd)

	final := updated.(ConfirmModel)
	assert.True(t, final.Confirmed())
}

func TestConfirmModelEnterTakesDeclineDefault(t *testing.T) {
	model := NewConfirmModel(testSummary())

	updated, cmd := model.Update(key("enter"))
	assert.NotNil(t, cmd)

	// The prompt reads [y/N], so a bare Enter must not apply.
	final := updated.(ConfirmModel)
	assert.False(t, final.Confirmed())
}

func TestConfirmModelDecline(t *testing.T) {
	model := NewConfirmModel(testSummary())

	updated, cmd := model.Update(key("n"))
	assert.NotNil(t, cmd)

	final := updated.(ConfirmModel)
	assert.False(t, final.Confirmed())
}

func TestConfirmModelIgnoresOtherKeys(t *testing.T) {
	model := NewConfirmModel(testSummary())

	updated, cmd := model.Update(key("x"))
	assert.Nil(t, cmd)

	final := updated.(ConfirmModel)
	assert.False(t, final.Confirmed())
}

func TestConfirmModelView(t *testing.T) {
	view := NewConfirmModel(testSummary()).View()

	assert.Contains(t, view, "2 new commits")
	assert.Contains(t, view, "tighten zsh prompt")
	assert.Contains(t, view, "Apply update? [y/N]")
}
