package executor

import (
	"context"
	"time"
)

// Runnable is a unit of work. ctx is cancelled when the running worker is interrupted.
// Queued runnables are removed by identity, so implementations should have
// comparable dynamic types. NewRunnable wraps a plain func accordingly.
type Runnable interface {
	Run(ctx context.Context)
}

type runnableFunc struct {
	fn func(ctx context.Context)
}

// NewRunnable adapts fn to a Runnable that Remove and Purge can find again.
func NewRunnable(fn func(ctx context.Context)) Runnable {
	return &runnableFunc{fn: fn}
}

func (r *runnableFunc) Run(ctx context.Context) {
	r.fn(ctx)
}

// Executor accepts work for asynchronous execution.
type Executor interface {
	Execute(r Runnable) error
}

// ExecutorService is an Executor with a lifecycle.
type ExecutorService interface {
	Executor
	Shutdown()
	ShutdownNow() []Runnable
	IsShutdown() bool
	IsTerminated() bool
	AwaitTermination(ctx context.Context, timeout time.Duration) (bool, error)
}

// Cancellable is implemented by queued work that can be discarded by Purge
// once cancelled.
type Cancellable interface {
	IsCancelled() bool
}

var _ ExecutorService = (*Pool)(nil)
