// Package services implements the business logic behind the admin API.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    ├── PoolService ──► executor.Pool (stats, setters, purge, shutdown)
//	    └── LoadService ──► executor.ExecutorService (synthetic batches)
//
// # PoolService
//
// Status converts a single Stats snapshot. Update applies a partial
// configuration change in an order that never passes through an invalid
// combination:
//
//	grow:    SetMaximumPoolSize(max) ─► SetCorePoolSize(core)
//	shrink:  SetCorePoolSize(core)   ─► SetMaximumPoolSize(max)
//
//	off:     AllowCoreThreadTimeOut(false) ─► SetKeepAliveTime(d)
//	on:      SetKeepAliveTime(d) ─► AllowCoreThreadTimeOut(true)
//
// Shutdown(now) returns the number of queued tasks drained by ShutdownNow.
// Drained futures are cancelled so that callers blocked in Get return.
//
// # LoadService
//
// Submit turns a LoadRequest into Count synthetic tasks, each sleeping for
// Duration and failing when FailEvery divides its position. Rejected tasks are
// re-submitted with exponential back-off until one deadline, shared by the
// whole batch, expires.
//
//	┌──────────┐  Submit   ┌──────────────┐  rejected  ┌─────────────────┐
//	│ request  │ ────────► │ executor     │ ─────────► │ backoff.Retry   │
//	└──────────┘           │ .Submit      │ ◄───────── │ (until timeout) │
//	                       └──────────────┘            └─────────────────┘
//	                              │ accepted
//	                              ▼
//	                       tracked batch (uuid) ──► Batch(id): pending,
//	                                                succeeded, failed,
//	                                                cancelled
//
// The last 64 batches are tracked; older ones are forgotten.
package services
