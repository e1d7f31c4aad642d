package services

import (
	"github.com/tupyy/taskpool/internal/models"
	"github.com/tupyy/taskpool/pkg/executor"
)

type canceller interface {
	Cancel(mayInterrupt bool) bool
}

type PoolService struct {
	pool *executor.Pool
}

func NewPoolService(p *executor.Pool) *PoolService {
	return &PoolService{pool: p}
}

func (s *PoolService) Status() models.PoolStatus {
	st := s.pool.Stats()
	return models.PoolStatus{
		ID:                     st.ID,
		Phase:                  st.Phase.String(),
		PoolSize:               st.PoolSize,
		ActiveCount:            st.ActiveCount,
		LargestPoolSize:        st.LargestPoolSize,
		CorePoolSize:           st.CorePoolSize,
		MaximumPoolSize:        st.MaximumPoolSize,
		QueuedTasks:            st.QueuedTasks,
		TaskCount:              st.TaskCount,
		CompletedTaskCount:     st.CompletedTaskCount,
		RejectedTaskCount:      st.RejectedTaskCount,
		KeepAlive:              st.KeepAliveTime,
		AllowCoreThreadTimeOut: st.AllowCoreThreadTimeOut,
	}
}

// Update applies u so that every intermediate configuration is valid: the
// maximum grows before the core size and the core size shrinks before the
// maximum; core time-out is switched off before the keep-alive changes and
// switched on after it. The first failing setter stops the update and its
// IllegalArgumentError is returned; earlier settings stay applied.
func (s *PoolService) Update(u models.PoolUpdate) (models.PoolStatus, error) {
	p := s.pool

	maxSize := u.MaximumPoolSize
	if maxSize != nil && *maxSize >= p.MaximumPoolSize() {
		if err := p.SetMaximumPoolSize(*maxSize); err != nil {
			return s.Status(), err
		}
		maxSize = nil
	}
	if u.CorePoolSize != nil {
		if err := p.SetCorePoolSize(*u.CorePoolSize); err != nil {
			return s.Status(), err
		}
	}
	if maxSize != nil {
		if err := p.SetMaximumPoolSize(*maxSize); err != nil {
			return s.Status(), err
		}
	}

	allow := u.AllowCoreThreadTimeOut
	if allow != nil && !*allow {
		if err := p.AllowCoreThreadTimeOut(false); err != nil {
			return s.Status(), err
		}
		allow = nil
	}
	if u.KeepAlive != nil {
		if err := p.SetKeepAliveTime(*u.KeepAlive); err != nil {
			return s.Status(), err
		}
	}
	if allow != nil {
		if err := p.AllowCoreThreadTimeOut(true); err != nil {
			return s.Status(), err
		}
	}

	return s.Status(), nil
}

// Purge drops cancelled tasks from the queue.
func (s *PoolService) Purge() {
	s.pool.Purge()
}

// Shutdown stops accepting work. With now set, running tasks are interrupted
// and queued tasks are drained; drained futures are cancelled so their
// waiters return. It reports how many tasks were drained.
func (s *PoolService) Shutdown(now bool) int {
	if !now {
		s.pool.Shutdown()
		return 0
	}
	drained := s.pool.ShutdownNow()
	for _, r := range drained {
		if c, ok := r.(canceller); ok {
			c.Cancel(false)
		}
	}
	return len(drained)
}
