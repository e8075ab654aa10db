package emailqueue

import "errors"

var (
	// ErrQueueClosed is logged when Add is called after Close.
	ErrQueueClosed = errors.New("emailqueue: queue is closed")

	// ErrJobPanicked wraps a recovered panic from the job pipeline.
	ErrJobPanicked = errors.New("emailqueue: job panicked")
)
