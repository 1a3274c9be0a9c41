package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/dotr/internal/application"
	"github.com/inovacc/dotr/internal/config"
	"github.com/inovacc/dotr/internal/git"
	"github.com/inovacc/dotr/internal/state"
	"github.com/inovacc/dotr/internal/update"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

// env bundles everything a command needs: configuration, the state
// store and the repository handle.
type env struct {
	cfg     config.Config
	store   *state.Store
	repo    update.Repo
	repoDir string
}

// loadEnv loads the configuration and opens the state store.
func loadEnv() (*env, error) {
	confDir, err := application.ConfigDirectory()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(confDir, config.FileName))
	if err != nil {
		return nil, err
	}

	repoDir, err := cfg.RepoPath()
	if err != nil {
		return nil, err
	}

	cacheDir, err := application.CacheDirectory()
	if err != nil {
		return nil, err
	}

	store, err := state.NewStore(cacheDir)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		store:   store,
		repo:    update.NewGitRepo(git.NewClient(repoDir), cfg.Remote),
		repoDir: repoDir,
	}, nil
}

// reloadFunc wraps the configured reload command as the applier's
// reload callback. No command configured means no reload.
func (e *env) reloadFunc() func(ctx context.Context) error {
	if e.cfg.ReloadCommand == "" {
		return nil
	}

	return func(ctx context.Context) error {
		cmd := exec.CommandContext(ctx, "sh", "-c", e.cfg.ReloadCommand)
		cmd.Dir = e.repoDir
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		return cmd.Run()
	}
}

// promptConfirm asks the user for confirmation and returns true if they confirm
// prompt should include the question (e.g., "Run installer? [y/N]: ")
func promptConfirm(prompt string) bool {
	_, _ = fmt.Fprint(os.Stdout, prompt)

	var response string

	_, _ = fmt.Scanln(&response)

	return response == "y" || response == "Y"
}
