// Package config loads the dotr configuration file.
//
// The file lives at <config-dir>/config.ini and is optional: a missing
// file yields the defaults. Example:
//
//	[dotfiles]
//	repo_dir        = ~/.dotfiles
//	remote          = origin
//	check_interval  = 86400
//	auto_apply      = false
//	reload_command  = exec zsh
//	install_command = ./install.sh
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/ini.v1"
)

const (
	// FileName is the configuration file name inside the config directory.
	FileName = "config.ini"

	// EnvRepoDir overrides the configured repository directory.
	EnvRepoDir = "DOTR_DIR"

	// DefaultCheckInterval is the minimum time between background checks.
	DefaultCheckInterval = 86400 // seconds

	defaultRemote  = "origin"
	defaultRepoDir = "~/.dotfiles"
)

// Config holds the dotfiles settings.
type Config struct {
	RepoDir        string `ini:"repo_dir"`
	Remote         string `ini:"remote"`
	CheckInterval  int64  `ini:"check_interval"`
	AutoApply      bool   `ini:"auto_apply"`
	ReloadCommand  string `ini:"reload_command"`
	InstallCommand string `ini:"install_command"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RepoDir:       defaultRepoDir,
		Remote:        defaultRemote,
		CheckInterval: DefaultCheckInterval,
	}
}

// Load reads the configuration file at path, applying defaults for
// anything unset. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		file, err := ini.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		if err := file.Section("dotfiles").MapTo(&cfg); err != nil {
			return cfg, fmt.Errorf("failed to map %s: %w", path, err)
		}
	}

	if dir := os.Getenv(EnvRepoDir); dir != "" {
		cfg.RepoDir = dir
	}

	if cfg.Remote == "" {
		cfg.Remote = defaultRemote
	}

	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = DefaultCheckInterval
	}

	return cfg, nil
}

// Interval returns the staleness interval as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.CheckInterval) * time.Second
}

// RepoPath expands the configured repository directory to an absolute path.
func (c Config) RepoPath() (string, error) {
	return expandPath(c.RepoDir)
}

// expandPath expands ~ to the user's home directory and returns an absolute path
func expandPath(path string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("path is empty")
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}
