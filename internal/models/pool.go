package models

import (
	"time"

	"github.com/google/uuid"
)

type PoolStatus struct {
	ID                     uuid.UUID
	Phase                  string
	PoolSize               int
	ActiveCount            int
	LargestPoolSize        int
	CorePoolSize           int
	MaximumPoolSize        int
	QueuedTasks            int
	TaskCount              uint64
	CompletedTaskCount     uint64
	RejectedTaskCount      uint64
	KeepAlive              time.Duration
	AllowCoreThreadTimeOut bool
}

// PoolUpdate carries the settings to change. Nil fields are left untouched.
type PoolUpdate struct {
	CorePoolSize           *int
	MaximumPoolSize        *int
	KeepAlive              *time.Duration
	AllowCoreThreadTimeOut *bool
}

func (u PoolUpdate) IsEmpty() bool {
	return u.CorePoolSize == nil && u.MaximumPoolSize == nil && u.KeepAlive == nil && u.AllowCoreThreadTimeOut == nil
}
