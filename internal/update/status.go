package update

import (
	"context"
	"time"
)

// Comparison is the local-vs-remote verdict of a status query.
type Comparison int

const (
	// ComparisonUnknown means the remote could not be consulted.
	// Never conflated with "up to date".
	ComparisonUnknown Comparison = iota
	ComparisonSynced
	ComparisonBehind
)

func (c Comparison) String() string {
	switch c {
	case ComparisonSynced:
		return "up to date"
	case ComparisonBehind:
		return "behind"
	default:
		return "unknown"
	}
}

// Status is the read-only report combining the live comparison with
// the last-check metadata.
type Status struct {
	Branch        string
	RemoteURL     string
	Comparison    Comparison
	CommitsBehind int
	CommitsAhead  int
	FilesChanged  int
	LastChecked   time.Time
	Checked       bool
}

// Status probes the remote synchronously so the report reflects
// current reality, at the cost of a network round trip. The cache
// write rules of CheckOnce apply. An unreachable remote yields an
// Unknown comparison rather than an error; a missing repository is
// still fatal.
func (c *Checker) Status(ctx context.Context) (*Status, error) {
	result, err := c.CheckOnce(ctx)

	st := &Status{}
	st.LastChecked, st.Checked, _ = c.Store.LastChecked()

	if err != nil {
		if IsUnreachable(err) {
			return st, nil
		}

		return nil, err
	}

	st.Branch = result.Branch
	st.RemoteURL = result.RemoteURL
	st.CommitsBehind = result.CommitsBehind
	st.CommitsAhead = result.CommitsAhead
	st.FilesChanged = result.FilesChanged

	if result.UpToDate() {
		st.Comparison = ComparisonSynced
	} else {
		st.Comparison = ComparisonBehind
	}

	return st, nil
}
