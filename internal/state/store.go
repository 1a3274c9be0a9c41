// Package state persists the updater's two records: the timestamp of
// the last remote check and the pending-update notification. Both are
// plain text files under the cache directory so they stay inspectable
// with cat, and both are replaced atomically (write to a temp file in
// the same directory, then rename).
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	checkFileName  = "last-check"
	notifyFileName = "update-available"
)

// Notification records a known, unapplied remote update. The existence
// of the file is the record: no file means no pending update.
type Notification struct {
	CommitsBehind int
	FilesChanged  int
}

// Store is a handle on the directory holding the persisted records.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// LastChecked returns the time of the last completed check. The bool
// is false when no check has ever completed.
func (s *Store) LastChecked() (time.Time, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, checkFileName))
	if os.IsNotExist(err) {
		return time.Time{}, false, nil
	}

	if err != nil {
		return time.Time{}, false, err
	}

	epoch, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		// Unreadable state counts as never checked.
		return time.Time{}, false, nil
	}

	return time.Unix(epoch, 0), true, nil
}

// TouchChecked records now as the last check time. The stored value
// never moves backwards, so concurrent writers cannot roll it back.
func (s *Store) TouchChecked(now time.Time) error {
	if last, ok, err := s.LastChecked(); err == nil && ok && last.After(now) {
		return nil
	}

	data := strconv.FormatInt(now.Unix(), 10) + "\n"

	return writeFileAtomic(filepath.Join(s.dir, checkFileName), []byte(data))
}

// Notification returns the pending-update record, or nil when none exists.
func (s *Store) Notification() (*Notification, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, notifyFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	n := &Notification{}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}

		count, err := strconv.Atoi(value)
		if err != nil {
			continue
		}

		switch key {
		case "commits_behind":
			n.CommitsBehind = count
		case "files_changed":
			n.FilesChanged = count
		}
	}

	return n, nil
}

// PutNotification writes the pending-update record.
func (s *Store) PutNotification(n Notification) error {
	data := fmt.Sprintf("commits_behind=%d\nfiles_changed=%d\n", n.CommitsBehind, n.FilesChanged)

	return writeFileAtomic(filepath.Join(s.dir, notifyFileName), []byte(data))
}

// ClearNotification removes the pending-update record. Clearing an
// absent record is not an error.
func (s *Store) ClearNotification() error {
	err := os.Remove(filepath.Join(s.dir, notifyFileName))
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

// writeFileAtomic replaces path with data in one step so a reader
// never observes a partial record.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return err
	}

	return os.Rename(tmp.Name(), path)
}
