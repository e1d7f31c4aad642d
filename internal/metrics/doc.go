// Package metrics exposes pool state and task outcomes to prometheus.
//
// Two sources feed the registry:
//
//	┌────────────────────┐  Stats() on scrape   ┌────────────────────┐
//	│   executor.Pool    │ ───────────────────▶ │     Collector      │
//	└────────────────────┘                      └────────────────────┘
//	          │ Hooks (BeforeExecute / AfterExecute)
//	          ▼
//	┌────────────────────┐
//	│    TaskMetrics     │  duration histogram, failure counter
//	└────────────────────┘
//
// # Exported Series
//
//	┌──────────────────────────────────────┬─────────┬───────────────────────────────┐
//	│ Name                                 │ Type    │ Source                        │
//	├──────────────────────────────────────┼─────────┼───────────────────────────────┤
//	│ taskpool_pool_phase                  │ gauge   │ Stats.Phase (-1 .. 3)         │
//	│ taskpool_pool_threads                │ gauge   │ Stats.PoolSize                │
//	│ taskpool_pool_active_threads         │ gauge   │ Stats.ActiveCount             │
//	│ taskpool_pool_largest_threads        │ gauge   │ Stats.LargestPoolSize         │
//	│ taskpool_pool_core_threads           │ gauge   │ Stats.CorePoolSize            │
//	│ taskpool_pool_max_threads            │ gauge   │ Stats.MaximumPoolSize         │
//	│ taskpool_pool_queued_tasks           │ gauge   │ Stats.QueuedTasks             │
//	│ taskpool_pool_tasks_total            │ counter │ Stats.TaskCount               │
//	│ taskpool_pool_completed_tasks_total  │ counter │ Stats.CompletedTaskCount      │
//	│ taskpool_pool_rejected_tasks_total   │ counter │ Stats.RejectedTaskCount       │
//	│ taskpool_task_duration_seconds       │ hist.   │ AfterExecute - BeforeExecute  │
//	│ taskpool_task_failures_total         │ counter │ panics and failed futures     │
//	└──────────────────────────────────────┴─────────┴───────────────────────────────┘
//
// Every pool series carries a "pool" label holding the pool id.
//
// # Usage Example
//
//	reg := prometheus.NewRegistry()
//	tm, err := metrics.NewTaskMetrics(reg)
//	pool, err := executor.New(2, 4, time.Minute, q, executor.WithHooks(tm.Hooks()))
//	reg.MustRegister(metrics.NewCollector(pool))
package metrics
