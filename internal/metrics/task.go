package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tupyy/taskpool/pkg/executor"
	"github.com/tupyy/taskpool/pkg/future"
	"github.com/tupyy/taskpool/pkg/thread"
)

// stateful is satisfied by every *future.Task[T].
type stateful interface {
	State() future.State
}

// TaskMetrics records how long tasks run and how many fail. A task fails when
// it panics or when it is a future that completed exceptionally.
type TaskMetrics struct {
	duration prometheus.Histogram
	failures prometheus.Counter
	started  sync.Map // *thread.Thread -> time.Time
}

func NewTaskMetrics(reg prometheus.Registerer) (*TaskMetrics, error) {
	m := &TaskMetrics{
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "task",
			Name:      "duration_seconds",
			Help:      "Time spent running a task on a worker thread.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "task",
			Name:      "failures_total",
			Help:      "Tasks that panicked or completed exceptionally.",
		}),
	}
	for _, c := range []prometheus.Collector{m.duration, m.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *TaskMetrics) Hooks() executor.Hooks {
	return executor.Hooks{
		BeforeExecute: func(t *thread.Thread, _ executor.Runnable) {
			m.started.Store(t, time.Now())
		},
		AfterExecute: func(t *thread.Thread, r executor.Runnable, err error) {
			if v, ok := m.started.LoadAndDelete(t); ok {
				m.duration.Observe(time.Since(v.(time.Time)).Seconds())
			}
			if err != nil {
				m.failures.Inc()
				return
			}
			if s, ok := r.(stateful); ok && s.State() == future.Exceptional {
				m.failures.Inc()
			}
		},
		WorkerExited: func(t *thread.Thread) {
			m.started.Delete(t)
		},
	}
}
