// Package git wraps the git executable for the operations the updater
// needs: metadata-only fetch, tip resolution, commit counting, changed-path
// listing, worktree status and fast-forward pull.
// Pattern inspired by github.com/cli/cli
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Client runs git commands against a repository directory.
type Client struct {
	RepoDir string // Repository directory
	GitPath string // Path to git executable
}

// NewClient creates a client for the given repository directory.
func NewClient(repoDir string) *Client {
	gitPath, _ := exec.LookPath("git")

	return &Client{
		RepoDir: repoDir,
		GitPath: gitPath,
	}
}

// Command creates a git command rooted at the repository directory.
// Note: Do not set Stdout/Stderr if you plan to use CombinedOutput()
func (c *Client) Command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)

	if c.RepoDir != "" {
		cmd.Dir = c.RepoDir
	}

	return cmd
}

// run executes a git command and returns trimmed stdout, wrapping
// failures in a GitError carrying stderr.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := c.Command(ctx, args...)

	var stderr strings.Builder

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return "", NewGitError(args, stderr.String(), err)
	}

	return strings.TrimSpace(string(output)), nil
}

// IsRepository checks if the directory is a git repository
func (c *Client) IsRepository(ctx context.Context) bool {
	cmd := c.Command(ctx, "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// CurrentBranch returns the current branch name
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	return c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// RemoteURL returns the URL for a remote
func (c *Client) RemoteURL(ctx context.Context, remote string) (string, error) {
	return c.run(ctx, "remote", "get-url", remote)
}

// Fetch downloads metadata from the remote without merging anything
// into the local state.
func (c *Client) Fetch(ctx context.Context, remote string) error {
	args := []string{"fetch", "--quiet", remote}

	cmd := c.Command(ctx, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return NewGitError(args, string(output), err)
	}

	return nil
}

// RevParse resolves a revision to its commit id.
func (c *Client) RevParse(ctx context.Context, rev string) (string, error) {
	return c.run(ctx, "rev-parse", "--verify", rev+"^{commit}")
}

// Upstream returns the upstream ref of the current branch (e.g.
// "origin/main"), or an error when no upstream is configured.
func (c *Client) Upstream(ctx context.Context) (string, error) {
	return c.run(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
}

// RevListCount counts the commits reachable from "to" but not "from".
func (c *Client) RevListCount(ctx context.Context, from, to string) (int, error) {
	output, err := c.run(ctx, "rev-list", "--count", from+".."+to)
	if err != nil {
		return 0, err
	}

	count, err := strconv.Atoi(output)
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list output %q: %w", output, err)
	}

	return count, nil
}

// DiffNameOnly lists the distinct paths that differ between two revisions.
func (c *Client) DiffNameOnly(ctx context.Context, a, b string) ([]string, error) {
	output, err := c.run(ctx, "diff", "--name-only", a, b)
	if err != nil {
		return nil, err
	}

	return splitLines(output), nil
}

// Commit is one entry of the remote-only history shown to the user
// before an update is applied.
type Commit struct {
	Hash    string
	Subject string
}

// LogRange returns the commits reachable from "to" but not "from",
// newest first, capped at limit.
func (c *Client) LogRange(ctx context.Context, from, to string, limit int) ([]Commit, error) {
	args := []string{"log", "--format=%h\x1f%s", from + ".." + to}
	if limit > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", limit))
	}

	output, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var commits []Commit

	for _, line := range splitLines(output) {
		hash, subject, _ := strings.Cut(line, "\x1f")
		commits = append(commits, Commit{Hash: hash, Subject: subject})
	}

	return commits, nil
}

// ModifiedPaths lists the paths with uncommitted modifications
// (staged, unstaged or untracked).
func (c *Client) ModifiedPaths(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}

	var paths []string

	for _, line := range splitLines(output) {
		if len(line) > 3 {
			paths = append(paths, strings.TrimSpace(line[3:]))
		}
	}

	return paths, nil
}

// Pull fast-forwards the current branch to the remote tip. The
// --ff-only flag keeps the operation atomic: git either moves the tip
// or leaves the tree untouched, it never leaves a half-done merge.
func (c *Client) Pull(ctx context.Context, remote string) error {
	args := []string{"pull", "--ff-only", "--quiet", remote}

	cmd := c.Command(ctx, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return NewGitError(args, string(output), err)
	}

	return nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	var lines []string

	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
