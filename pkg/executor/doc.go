// Package executor implements a bounded, dynamically sized pool of worker
// threads together with helpers to submit work and collect results.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                               Pool                                  │
//	│                                                                     │
//	│   ctl (atomic int32)         mainLock                               │
//	│   ┌─────┬──────────────┐     ┌──────────────────────────────────┐   │
//	│   │phase│ worker count │     │ workers registry, largest size,  │   │
//	│   └─────┴──────────────┘     │ completed task count             │   │
//	│                              └──────────────────────────────────┘   │
//	│                                                                     │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │   Worker 1   │      │   Worker 2   │      │   Worker N   │       │
//	│  │ gate, thread │      │ gate, thread │      │ gate, thread │       │
//	│  └──────────────┘      └──────────────┘      └──────────────┘       │
//	│         ▲                     ▲                     ▲               │
//	│         └─────────────────────┼─────────────────────┘               │
//	│                        getTask() (Take / PollTimeout)               │
//	│  ┌─────────────────────────────────────────────────────────┐        │
//	│  │                 BlockingQueue[Runnable]                 │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                               ▲                                     │
//	│                          Execute(r)                                 │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Control Word
//
// The phase and the worker count live in one int32 so both change together
// with a single compare-and-swap:
//
//	 31  29 28                                  0
//	┌──────┬─────────────────────────────────────┐
//	│phase │            worker count             │
//	└──────┴─────────────────────────────────────┘
//
//	RUNNING (-1) ─▶ SHUTDOWN (0) ─▶ STOP (1) ─▶ TIDYING (2) ─▶ TERMINATED (3)
//
// Phases only move forward and may skip values: Shutdown goes to SHUTDOWN,
// ShutdownNow goes to STOP, and the last worker to leave moves the pool
// through TIDYING (running the Terminated hook) to TERMINATED.
//
// The worker count is the number of workers permitted to exist. It is
// incremented before a worker is created and may briefly differ from the
// registry size; every decision re-reads it.
//
// # Admission
//
//  1. fewer than core workers: start a worker with r as its first task
//  2. pool running and queue accepts r: done, unless the pool stopped
//     meanwhile (then r is removed and rejected) or no worker is left
//     (then an idle worker is started)
//  3. start a worker bounded by the maximum size
//  4. otherwise call the RejectedExecutionHandler
//
// # Worker Loop
//
// A worker runs its first task, then takes tasks from the queue until
// getTask returns nil. getTask gives up when the pool is stopping, shut down
// with an empty queue, above its maximum size, or when the worker has been
// idle for the keep-alive time and it is not the last worker left to drain a
// non-empty queue.
//
// Each worker owns a gate held while a task runs. Pool initiated interrupts
// (shutdown, resizing) only reach workers whose gate is free, so a task is
// never interrupted by housekeeping. ShutdownNow interrupts every started
// worker regardless of the gate.
//
// A Runnable that panics is recovered, reported to AfterExecute, and ends its
// worker; the pool starts a replacement unless it is stopping. Futures never
// panic out of Run: their failures are kept in the future.
//
// # Rejection Policies
//
//	┌─────────────────────┬─────────────────────────────────────────────┐
//	│ AbortPolicy         │ return RejectedExecutionError (default)     │
//	│ CallerRunsPolicy    │ run on the submitting goroutine             │
//	│ DiscardPolicy       │ drop silently                               │
//	│ DiscardOldestPolicy │ drop the queue head and execute again       │
//	│ RetryPolicy         │ re-admit with exponential back-off          │
//	└─────────────────────┴─────────────────────────────────────────────┘
//
// # Submitting Work
//
//	pool, err := executor.New(2, 4, time.Minute, queue.NewFIFO[executor.Runnable](100))
//	if err != nil {
//	    return err
//	}
//	defer pool.Shutdown()
//
//	task, err := executor.Submit(pool, func(ctx context.Context) (int, error) {
//	    return 42, nil
//	})
//	v, err := task.Get(ctx)
//
// InvokeAll waits for a batch, InvokeAny returns the first success and
// cancels the rest, CompletionService delivers tasks as they complete.
package executor
