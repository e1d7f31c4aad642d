package v1

import (
	"fmt"
	"time"

	"github.com/tupyy/taskpool/internal/models"
	"github.com/tupyy/taskpool/internal/util"
)

// NewPoolStatusFromModel converts a models.PoolStatus to an API PoolStatus.
func NewPoolStatusFromModel(m models.PoolStatus) PoolStatus {
	return PoolStatus{
		Id:                     m.ID.String(),
		Phase:                  m.Phase,
		PoolSize:               m.PoolSize,
		ActiveCount:            m.ActiveCount,
		LargestPoolSize:        m.LargestPoolSize,
		CorePoolSize:           m.CorePoolSize,
		MaximumPoolSize:        m.MaximumPoolSize,
		QueuedTasks:            m.QueuedTasks,
		TaskCount:              m.TaskCount,
		CompletedTaskCount:     m.CompletedTaskCount,
		RejectedTaskCount:      m.RejectedTaskCount,
		KeepAlive:              m.KeepAlive.String(),
		AllowCoreThreadTimeOut: m.AllowCoreThreadTimeOut,
	}
}

// ToModel parses the update. Durations use time.ParseDuration syntax.
func (u PoolUpdate) ToModel() (models.PoolUpdate, error) {
	m := models.PoolUpdate{
		CorePoolSize:           u.CorePoolSize,
		MaximumPoolSize:        u.MaximumPoolSize,
		AllowCoreThreadTimeOut: u.AllowCoreThreadTimeOut,
	}
	if u.KeepAlive != nil {
		d, err := time.ParseDuration(*u.KeepAlive)
		if err != nil {
			return models.PoolUpdate{}, fmt.Errorf("invalid keepAlive %q: %w", *u.KeepAlive, err)
		}
		m.KeepAlive = &d
	}
	return m, nil
}

// ToModel parses the request. A missing duration means the tasks return at once.
func (r LoadRequest) ToModel() (models.LoadRequest, error) {
	m := models.LoadRequest{Count: r.Count}
	if r.Duration != nil {
		d, err := time.ParseDuration(*r.Duration)
		if err != nil {
			return models.LoadRequest{}, fmt.Errorf("invalid duration %q: %w", *r.Duration, err)
		}
		if d < 0 {
			return models.LoadRequest{}, fmt.Errorf("duration must not be negative, got %s", d)
		}
		m.Duration = d
	}
	m.FailEvery = util.Deref(r.FailEvery, 0)
	return m, nil
}

func NewLoadResultFromModel(m models.LoadResult) LoadResult {
	return LoadResult{
		Batch:    m.Batch.String(),
		Accepted: m.Accepted,
		Rejected: m.Rejected,
	}
}

func NewBatchStatusFromModel(m models.BatchStatus) BatchStatus {
	return BatchStatus{
		Batch:     m.Batch.String(),
		Submitted: m.Submitted.UTC().Format(time.RFC3339),
		Done:      m.Done(),
		Pending:   m.Pending,
		Succeeded: m.Succeeded,
		Failed:    m.Failed,
		Cancelled: m.Cancelled,
	}
}
