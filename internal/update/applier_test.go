package update

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/inovacc/dotr/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUpToDate(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PutNotification(state.Notification{CommitsBehind: 1, FilesChanged: 1}))

	repo := &fakeRepo{result: syncedResult()}
	applier := NewApplier(repo, store)

	st, err := applier.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, UpToDate, st)
	assert.Equal(t, 0, repo.pulls)

	n, err := store.Notification()
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestRunUpToDateIdempotent(t *testing.T) {
	store := newTestStore(t)
	repo := &fakeRepo{result: syncedResult()}
	applier := NewApplier(repo, store)

	for range 2 {
		st, err := applier.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, UpToDate, st)
	}

	assert.Equal(t, 2, repo.probes)
	assert.Equal(t, 0, repo.pulls)
}

func TestRunDeclineKeepsNotification(t *testing.T) {
	store := newTestStore(t)
	repo := &fakeRepo{result: behindResult(3, 4)}

	applier := NewApplier(repo, store)
	applier.Confirm = func(Summary) (bool, error) { return false, nil }

	st, err := applier.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Idle, st)
	assert.Equal(t, 0, repo.pulls)

	n, err := store.Notification()
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 3, n.CommitsBehind)
}

func TestRunNilConfirmDeclines(t *testing.T) {
	store := newTestStore(t)
	repo := &fakeRepo{result: behindResult(1, 1)}

	st, err := NewApplier(repo, store).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Idle, st)
	assert.Equal(t, 0, repo.pulls)
}

func TestRunBlockedDirty(t *testing.T) {
	store := newTestStore(t)
	repo := &fakeRepo{
		result:   behindResult(2, 2),
		modified: []string{"zshrc", "vimrc"},
	}

	confirmCalled := false

	applier := NewApplier(repo, store)
	applier.Confirm = func(Summary) (bool, error) {
		confirmCalled = true
		return true, nil
	}

	st, err := applier.Run(context.Background())
	assert.Equal(t, BlockedDirty, st)
	assert.Equal(t, 0, repo.pulls)
	assert.False(t, confirmCalled, "dirty check must precede confirmation")

	var dirty *DirtyTreeError
	require.ErrorAs(t, err, &dirty)
	assert.Equal(t, []string{"zshrc", "vimrc"}, dirty.Paths)
}

func TestRunBlockedDirtyIgnoresAutoApply(t *testing.T) {
	store := newTestStore(t)
	repo := &fakeRepo{
		result:   behindResult(5, 5),
		modified: []string{"tmux.conf"},
	}

	applier := NewApplier(repo, store)
	applier.AutoApply = true

	st, err := applier.Run(context.Background())
	assert.Equal(t, BlockedDirty, st)
	assert.Equal(t, 0, repo.pulls)

	var dirty *DirtyTreeError
	require.ErrorAs(t, err, &dirty)
}

func TestRunConfirmedApply(t *testing.T) {
	store := newTestStore(t)
	repo := &fakeRepo{result: behindResult(2, 3)}

	reloaded := false

	applier := NewApplier(repo, store)
	applier.Confirm = func(s Summary) (bool, error) {
		assert.Equal(t, 2, s.CommitsBehind)
		assert.Equal(t, 3, s.FilesChanged)
		return true, nil
	}
	applier.Reload = func(context.Context) error {
		reloaded = true
		return nil
	}

	st, err := applier.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Applied, st)
	assert.Equal(t, 1, repo.pulls)
	assert.True(t, reloaded)

	n, err := store.Notification()
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestRunAutoApplySkipsPrompt(t *testing.T) {
	store := newTestStore(t)
	repo := &fakeRepo{result: behindResult(1, 1)}

	applier := NewApplier(repo, store)
	applier.AutoApply = true
	applier.Confirm = func(Summary) (bool, error) {
		t.Fatal("prompt must be skipped under auto-apply")
		return false, nil
	}

	st, err := applier.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Applied, st)
	assert.Equal(t, 1, repo.pulls)
}

func TestRunApplyFailure(t *testing.T) {
	store := newTestStore(t)
	repo := &fakeRepo{
		result:  behindResult(2, 2),
		pullErr: errors.New("connection reset mid-pull"),
	}

	applier := NewApplier(repo, store)
	applier.AutoApply = true

	st, err := applier.Run(context.Background())
	assert.Equal(t, Failed, st)

	var applyErr *ApplyError
	require.ErrorAs(t, err, &applyErr)

	// Pre-apply state survives: the notification is still there.
	n, err := store.Notification()
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 2, n.CommitsBehind)
}

func TestRunProbeFailure(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PutNotification(state.Notification{CommitsBehind: 7, FilesChanged: 2}))

	repo := &fakeRepo{probeErr: &ProbeError{Kind: ProbeUnreachable, Err: errors.New("offline")}}

	st, err := NewApplier(repo, store).Run(context.Background())
	assert.Equal(t, Failed, st)
	assert.True(t, IsUnreachable(err))

	// Notification untouched, timestamp still refreshed.
	n, err := store.Notification()
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 7, n.CommitsBehind)

	_, checked, err := store.LastChecked()
	require.NoError(t, err)
	assert.True(t, checked)
}

func TestRunClearNotificationFailureNamesTheCache(t *testing.T) {
	store := newTestStore(t)

	// A non-empty directory at the record's path makes the post-apply
	// cleanup fail while the pull itself succeeds.
	notifyDir := filepath.Join(store.Dir(), "update-available")
	require.NoError(t, os.MkdirAll(filepath.Join(notifyDir, "blocker"), 0755))

	repo := &fakeRepo{result: behindResult(1, 1)}

	reloaded := false

	applier := NewApplier(repo, store)
	applier.AutoApply = true
	applier.Reload = func(context.Context) error {
		reloaded = true
		return nil
	}

	st, err := applier.Run(context.Background())
	assert.Equal(t, Applied, st)
	assert.Equal(t, 1, repo.pulls)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "notification cache")
	assert.NotContains(t, err.Error(), "reload")
	assert.False(t, reloaded)
}

func TestRunReloadFailureStillApplied(t *testing.T) {
	store := newTestStore(t)
	repo := &fakeRepo{result: behindResult(1, 1)}

	applier := NewApplier(repo, store)
	applier.AutoApply = true
	applier.Reload = func(context.Context) error {
		return errors.New("shell not found")
	}

	st, err := applier.Run(context.Background())
	assert.Equal(t, Applied, st)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reload failed")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "up to date", UpToDate.String())
	assert.Equal(t, "blocked (dirty tree)", BlockedDirty.String())
	assert.Equal(t, "applied", Applied.String())
}
