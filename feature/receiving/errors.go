package receiving

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionActive is returned when an initialization is attempted
	// while another session is live. One session per device.
	ErrSessionActive = errors.New("a receiving session is already active")

	// ErrNoSession is returned when an operation needs a live session.
	ErrNoSession = errors.New("no active receiving session")

	// ErrItemNotInSession is returned for unknown item ids; the item set of
	// a session is fixed at initialization.
	ErrItemNotInSession = errors.New("item is not part of the session")

	// ErrCommitInProgress rejects mutations while the commit is in flight.
	ErrCommitInProgress = errors.New("session commit in progress")

	// ErrEmptyDraft is returned when an extraction draft or order carries
	// no line items; no session is created.
	ErrEmptyDraft = errors.New("no line items to receive")
)

// CommitError reports a partial commit. Items are written independently with
// no cross-item transaction, so applied writes stay applied; the caller
// retries the remainder from the retained session.
type CommitError struct {
	// Applied are item ids whose writes went through (including earlier
	// attempts).
	Applied []string
	// FailedItem is the id of the item whose write failed.
	FailedItem string
	// Remaining are item ids that were not attempted.
	Remaining []string
	// Err is the underlying per-item failure.
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit stopped at item %s (%d applied, %d not attempted): %v",
		e.FailedItem, len(e.Applied), len(e.Remaining), e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
