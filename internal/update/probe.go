// Package update implements the dotfiles update subsystem: the remote
// state probe, the staleness gate, the background checker, the status
// reporter and the interactive applier.
package update

import (
	"context"
	"errors"
	"fmt"

	"github.com/inovacc/dotr/internal/git"
)

// commitLimit caps the commit list carried in a probe result for display.
const commitLimit = 20

// ProbeErrorKind classifies why a probe failed.
type ProbeErrorKind int

const (
	// ProbeUnreachable means the remote could not be contacted. The
	// comparison is unknown, not "up to date".
	ProbeUnreachable ProbeErrorKind = iota

	// ProbeNotARepository means the local directory is not a valid
	// tracked checkout. Fatal to any update operation.
	ProbeNotARepository
)

// ProbeError is a failed probe against the tracked remote.
type ProbeError struct {
	Kind ProbeErrorKind
	Err  error
}

func (e *ProbeError) Error() string {
	switch e.Kind {
	case ProbeNotARepository:
		return fmt.Sprintf("dotfiles directory is not a git repository: %v", e.Err)
	default:
		return fmt.Sprintf("dotfiles remote is unreachable: %v", e.Err)
	}
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// IsUnreachable reports whether err is a probe failure caused by an
// uncontactable remote.
func IsUnreachable(err error) bool {
	var probeErr *ProbeError
	return errors.As(err, &probeErr) && probeErr.Kind == ProbeUnreachable
}

// IsNotARepository reports whether err is a probe failure caused by a
// missing or invalid local checkout.
func IsNotARepository(err error) bool {
	var probeErr *ProbeError
	return errors.As(err, &probeErr) && probeErr.Kind == ProbeNotARepository
}

// Result is a completed comparison of the local checkout against the
// tracked remote.
type Result struct {
	Branch        string
	RemoteURL     string
	LocalHead     string
	RemoteHead    string
	CommitsBehind int
	CommitsAhead  int
	FilesChanged  int
	Commits       []git.Commit
}

// UpToDate reports whether the local tip already contains all remote
// history.
func (r *Result) UpToDate() bool {
	return r.CommitsBehind == 0
}

// Repo is the version-controlled checkout the updater operates on.
type Repo interface {
	// Probe fetches remote metadata and compares tips without
	// touching the working tree.
	Probe(ctx context.Context) (*Result, error)

	// ModifiedPaths lists uncommitted local modifications.
	ModifiedPaths(ctx context.Context) ([]string, error)

	// Pull merges the remote changes into the local checkout. The
	// operation is atomic: on failure the local tip is unchanged.
	Pull(ctx context.Context) error
}

// gitRepo adapts the git client to the Repo contract.
type gitRepo struct {
	client *git.Client
	remote string
}

// NewGitRepo wraps a git client and remote name as a Repo.
func NewGitRepo(client *git.Client, remote string) Repo {
	return &gitRepo{client: client, remote: remote}
}

func (r *gitRepo) Probe(ctx context.Context) (*Result, error) {
	if !r.client.IsRepository(ctx) {
		return nil, &ProbeError{
			Kind: ProbeNotARepository,
			Err:  fmt.Errorf("no git repository at %s", r.client.RepoDir),
		}
	}

	if err := r.client.Fetch(ctx, r.remote); err != nil {
		return nil, &ProbeError{Kind: ProbeUnreachable, Err: err}
	}

	branch, err := r.client.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current branch: %w", err)
	}

	upstream, err := r.client.Upstream(ctx)
	if err != nil {
		if !git.IsNoUpstream(err) {
			return nil, fmt.Errorf("failed to resolve upstream: %w", err)
		}

		upstream = r.remote + "/" + branch
	}

	localHead, err := r.client.RevParse(ctx, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve local tip: %w", err)
	}

	remoteHead, err := r.client.RevParse(ctx, upstream)
	if err != nil {
		// Fetch succeeded but the tracked ref is gone on the remote.
		return nil, &ProbeError{Kind: ProbeUnreachable, Err: err}
	}

	result := &Result{
		Branch:     branch,
		LocalHead:  localHead,
		RemoteHead: remoteHead,
	}

	// Best effort; status display survives a missing remote URL.
	result.RemoteURL, _ = r.client.RemoteURL(ctx, r.remote)

	if result.CommitsBehind, err = r.client.RevListCount(ctx, "HEAD", upstream); err != nil {
		return nil, fmt.Errorf("failed to count remote commits: %w", err)
	}

	if result.CommitsAhead, err = r.client.RevListCount(ctx, upstream, "HEAD"); err != nil {
		return nil, fmt.Errorf("failed to count local commits: %w", err)
	}

	if localHead != remoteHead {
		paths, err := r.client.DiffNameOnly(ctx, "HEAD", upstream)
		if err != nil {
			return nil, fmt.Errorf("failed to diff tips: %w", err)
		}

		result.FilesChanged = len(paths)
	}

	if result.CommitsBehind > 0 {
		if result.Commits, err = r.client.LogRange(ctx, "HEAD", upstream, commitLimit); err != nil {
			return nil, fmt.Errorf("failed to list remote commits: %w", err)
		}
	}

	return result, nil
}

func (r *gitRepo) ModifiedPaths(ctx context.Context) ([]string, error) {
	return r.client.ModifiedPaths(ctx)
}

func (r *gitRepo) Pull(ctx context.Context) error {
	return r.client.Pull(ctx, r.remote)
}
