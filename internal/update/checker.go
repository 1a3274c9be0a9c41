package update

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/inovacc/dotr/internal/state"
)

// Checker probes the remote and maintains the persisted check
// timestamp and pending-update notification.
type Checker struct {
	Repo  Repo
	Store *state.Store
	Log   *log.Logger

	now func() time.Time
}

// NewChecker creates a checker. A nil logger discards all output; the
// background path must never write to the invoking session's streams,
// so it passes a file-backed logger instead.
func NewChecker(repo Repo, store *state.Store, logger *log.Logger) *Checker {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Checker{
		Repo:  repo,
		Store: store,
		Log:   logger,
		now:   time.Now,
	}
}

// CheckOnce performs one probe and applies the cache write rules:
// behind the remote writes the notification, in sync removes it, and a
// failed probe leaves it untouched (stale information beats erasing a
// real pending notification on a transient network blip). The check
// timestamp advances in every case, so a failed probe still counts as
// "checked" and an unreachable remote is not hammered every session.
func (c *Checker) CheckOnce(ctx context.Context) (*Result, error) {
	result, probeErr := c.Repo.Probe(ctx)

	if err := c.Store.TouchChecked(c.now()); err != nil {
		c.Log.Warn("failed to record check time", "err", err)
	}

	if probeErr != nil {
		c.Log.Warn("probe failed", "err", probeErr)

		return nil, probeErr
	}

	if result.UpToDate() {
		if err := c.Store.ClearNotification(); err != nil {
			c.Log.Warn("failed to clear notification", "err", err)
		}

		c.Log.Info("dotfiles up to date", "branch", result.Branch)

		return result, nil
	}

	record := state.Notification{
		CommitsBehind: result.CommitsBehind,
		FilesChanged:  result.FilesChanged,
	}

	if err := c.Store.PutNotification(record); err != nil {
		c.Log.Warn("failed to write notification", "err", err)

		return result, err
	}

	c.Log.Info("update available",
		"branch", result.Branch,
		"commits_behind", result.CommitsBehind,
		"files_changed", result.FilesChanged)

	return result, nil
}
