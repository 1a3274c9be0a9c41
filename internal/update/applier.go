package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/inovacc/dotr/internal/git"
	"github.com/inovacc/dotr/internal/state"
)

// State is a step of the apply flow.
type State int

const (
	Idle State = iota
	Probing
	UpToDate
	Confirming
	BlockedDirty
	Applying
	Applied
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Probing:
		return "probing"
	case UpToDate:
		return "up to date"
	case Confirming:
		return "confirming"
	case BlockedDirty:
		return "blocked (dirty tree)"
	case Applying:
		return "applying"
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Summary is the human-readable description of a pending update,
// shown before confirmation.
type Summary struct {
	Branch        string
	CommitsBehind int
	FilesChanged  int
	Commits       []git.Commit
}

// DirtyTreeError is a refusal, not a failure: the working tree has
// uncommitted modifications and the update will not touch it.
type DirtyTreeError struct {
	Paths []string
}

func (e *DirtyTreeError) Error() string {
	return fmt.Sprintf("working tree has uncommitted changes:\n  %s",
		strings.Join(e.Paths, "\n  "))
}

// ApplyError wraps a failure of the merge step itself. The local tree
// is guaranteed unchanged.
type ApplyError struct {
	Err error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("failed to apply update: %v", e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// Applier runs the user-invoked update flow: probe, precondition
// checks, confirmation, fast-forward pull, reload.
type Applier struct {
	Repo  Repo
	Store *state.Store

	// AutoApply skips the confirmation prompt. It never overrides the
	// dirty-tree check.
	AutoApply bool

	// Confirm presents the update summary and returns the user's
	// decision. A nil Confirm declines, which keeps non-interactive
	// runs without AutoApply deterministic.
	Confirm func(Summary) (bool, error)

	// Reload re-sources the host environment's configuration after a
	// successful apply. Opaque to the updater; nil skips it.
	Reload func(ctx context.Context) error

	now func() time.Time
}

// NewApplier creates an applier for the given checkout and store.
func NewApplier(repo Repo, store *state.Store) *Applier {
	return &Applier{
		Repo:  repo,
		Store: store,
		now:   time.Now,
	}
}

// Run drives the flow to a terminal state. The returned error carries
// the detail for BlockedDirty (*DirtyTreeError) and Failed
// (*ProbeError or *ApplyError); UpToDate, Idle and Applied return a
// nil error, except when the post-apply reload fails.
func (a *Applier) Run(ctx context.Context) (State, error) {
	result, err := a.Repo.Probe(ctx)

	// The probe counts as a completed check whether or not it
	// succeeded, mirroring the background checker.
	_ = a.Store.TouchChecked(a.now())

	if err != nil {
		return Failed, err
	}

	if result.UpToDate() {
		if err := a.Store.ClearNotification(); err != nil {
			return UpToDate, err
		}

		return UpToDate, nil
	}

	record := state.Notification{
		CommitsBehind: result.CommitsBehind,
		FilesChanged:  result.FilesChanged,
	}

	_ = a.Store.PutNotification(record)

	// Dirty check strictly precedes confirmation: a dirty tree is
	// refused even under AutoApply.
	paths, err := a.Repo.ModifiedPaths(ctx)
	if err != nil {
		return Failed, err
	}

	if len(paths) > 0 {
		return BlockedDirty, &DirtyTreeError{Paths: paths}
	}

	if !a.AutoApply {
		confirmed := false

		if a.Confirm != nil {
			confirmed, err = a.Confirm(summarize(result))
			if err != nil {
				return Failed, err
			}
		}

		if !confirmed {
			return Idle, nil
		}
	}

	if err := a.Repo.Pull(ctx); err != nil {
		return Failed, &ApplyError{Err: err}
	}

	if err := a.Store.ClearNotification(); err != nil {
		return Applied, fmt.Errorf("update applied, but failed to clear the notification cache: %w", err)
	}

	_ = a.Store.TouchChecked(a.now())

	if a.Reload != nil {
		if err := a.Reload(ctx); err != nil {
			return Applied, fmt.Errorf("update applied, but reload failed: %w", err)
		}
	}

	return Applied, nil
}

func summarize(r *Result) Summary {
	return Summary{
		Branch:        r.Branch,
		CommitsBehind: r.CommitsBehind,
		FilesChanged:  r.FilesChanged,
		Commits:       r.Commits,
	}
}
