package models

import (
	"time"

	"github.com/google/uuid"
)

// LoadRequest describes a batch of synthetic tasks. Every task sleeps for
// Duration; when FailEvery is positive every FailEvery-th task fails.
type LoadRequest struct {
	Count     int
	Duration  time.Duration
	FailEvery int
}

type LoadResult struct {
	Batch    uuid.UUID
	Accepted int
	Rejected int
}

type BatchStatus struct {
	Batch     uuid.UUID
	Submitted time.Time
	Pending   int
	Succeeded int
	Failed    int
	Cancelled int
}

func (b BatchStatus) Done() bool {
	return b.Pending == 0
}
