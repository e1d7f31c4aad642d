package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tupyy/taskpool/pkg/executor"
)

const namespace = "taskpool"

type StatsSource interface {
	Stats() executor.Stats
}

// Collector reads a fresh snapshot on every scrape.
type Collector struct {
	source StatsSource

	phase     *prometheus.Desc
	threads   *prometheus.Desc
	active    *prometheus.Desc
	largest   *prometheus.Desc
	core      *prometheus.Desc
	max       *prometheus.Desc
	queued    *prometheus.Desc
	tasks     *prometheus.Desc
	completed *prometheus.Desc
	rejected  *prometheus.Desc
}

var _ prometheus.Collector = &Collector{}

func NewCollector(source StatsSource) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", name), help, []string{"pool"}, nil)
	}
	return &Collector{
		source:    source,
		phase:     desc("phase", "Lifecycle phase: -1 running, 0 shutdown, 1 stop, 2 tidying, 3 terminated."),
		threads:   desc("threads", "Current number of worker threads."),
		active:    desc("active_threads", "Worker threads currently running a task."),
		largest:   desc("largest_threads", "Largest number of worker threads seen."),
		core:      desc("core_threads", "Configured core pool size."),
		max:       desc("max_threads", "Configured maximum pool size."),
		queued:    desc("queued_tasks", "Tasks waiting in the queue."),
		tasks:     desc("tasks_total", "Tasks ever scheduled, approximate."),
		completed: desc("completed_tasks_total", "Tasks that finished running."),
		rejected:  desc("rejected_tasks_total", "Tasks handed to the rejection handler."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.phase
	ch <- c.threads
	ch <- c.active
	ch <- c.largest
	ch <- c.core
	ch <- c.max
	ch <- c.queued
	ch <- c.tasks
	ch <- c.completed
	ch <- c.rejected
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	id := s.ID.String()

	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, id)
	}
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), id)
	}

	gauge(c.phase, float64(s.Phase.Ordinal()))
	gauge(c.threads, float64(s.PoolSize))
	gauge(c.active, float64(s.ActiveCount))
	gauge(c.largest, float64(s.LargestPoolSize))
	gauge(c.core, float64(s.CorePoolSize))
	gauge(c.max, float64(s.MaximumPoolSize))
	gauge(c.queued, float64(s.QueuedTasks))
	counter(c.tasks, s.TaskCount)
	counter(c.completed, s.CompletedTaskCount)
	counter(c.rejected, s.RejectedTaskCount)
}
