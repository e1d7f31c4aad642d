package executor

import (
	"time"

	"github.com/google/uuid"
)

// Stats is a point-in-time snapshot of a pool. Counts are approximate while
// tasks are running.
type Stats struct {
	ID                     uuid.UUID
	Phase                  Phase
	PoolSize               int
	ActiveCount            int
	LargestPoolSize        int
	CorePoolSize           int
	MaximumPoolSize        int
	QueuedTasks            int
	TaskCount              uint64
	CompletedTaskCount     uint64
	RejectedTaskCount      uint64
	KeepAliveTime          time.Duration
	AllowCoreThreadTimeOut bool
}

// Stats collects every counter under a single acquisition of the registry lock.
func (p *Pool) Stats() Stats {
	queued := p.queue.Size()

	p.mainLock.Lock()
	c := p.ctl.Load()
	s := Stats{
		ID:                     p.id,
		Phase:                  Phase(runStateOf(c)),
		LargestPoolSize:        p.largestPoolSize,
		CorePoolSize:           p.CorePoolSize(),
		MaximumPoolSize:        p.MaximumPoolSize(),
		QueuedTasks:            queued,
		CompletedTaskCount:     p.completedTaskCount,
		RejectedTaskCount:      p.rejectedCount.Load(),
		KeepAliveTime:          p.KeepAliveTime(),
		AllowCoreThreadTimeOut: p.AllowsCoreThreadTimeOut(),
	}
	if runStateLessThan(c, tidying) {
		s.PoolSize = len(p.workers)
	}
	for w := range p.workers {
		s.CompletedTaskCount += w.completedTasks.Load()
		if w.isLocked() {
			s.ActiveCount++
		}
	}
	p.mainLock.Unlock()

	s.TaskCount = s.CompletedTaskCount + uint64(s.ActiveCount) + uint64(queued)
	return s
}
