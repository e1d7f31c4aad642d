// Package future implements Task, a cancellable single-assignment result cell.
//
// # State Machine
//
//	           Run: set / setException
//	 ┌────────────▶ COMPLETING ──┬──▶ NORMAL
//	 │                           └──▶ EXCEPTIONAL
//	NEW
//	 │  Cancel(false)
//	 ├────────────▶ CANCELLED
//	 │  Cancel(true)
//	 └────────────▶ INTERRUPTING ───▶ INTERRUPTED
//
// Transitions are one way. Once the state is past COMPLETING the outcome
// never changes and every Get returns the same value or error:
//
//	┌───────────────────────────────┬──────────────────────────────┐
//	│ state                         │ Get returns                  │
//	├───────────────────────────────┼──────────────────────────────┤
//	│ NORMAL                        │ value, nil                   │
//	│ EXCEPTIONAL                   │ zero, ExecutionError(cause)  │
//	│ CANCELLED / INTERRUPT(ING|ED) │ zero, CancellationError      │
//	└───────────────────────────────┴──────────────────────────────┘
//
// # Waiters
//
// A goroutine blocked in Get pushes a waitNode onto a lock-free stack rooted
// at the task and parks on the node's one slot channel:
//
//	waiters ──▶ [node c] ──▶ [node b] ──▶ [node a] ──▶ nil
//
// Completion swaps the root to nil and walks the detached chain once,
// waking every node still marked active. A waiter that times out or whose
// context is cancelled marks its node inactive and unlinks it; a race with
// another unlink restarts the scan.
//
// # Interrupts
//
// Run derives a context from the one it is given and publishes its cancel
// func as the task's runner. Cancel(true) calls it, which is how a running
// callable learns it was cancelled. The callable is free to ignore it: the
// task still reports INTERRUPTED.
//
// # Usage
//
//	t := future.New(func(ctx context.Context) (int, error) {
//	    return 42, nil
//	})
//	go t.Run(context.Background())
//
//	v, err := t.GetTimeout(ctx, 50*time.Millisecond)
//	if errors.IsTimeoutError(err) {
//	    v, err = t.Get(ctx)
//	}
package future
