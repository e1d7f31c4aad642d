package executor

import "github.com/tupyy/taskpool/pkg/thread"

// Hooks are optional callbacks invoked by workers. A panic in BeforeExecute or
// AfterExecute terminates the worker that ran it; the pool replaces it.
type Hooks struct {
	// BeforeExecute runs on the worker thread before r.
	BeforeExecute func(t *thread.Thread, r Runnable)
	// AfterExecute runs on the worker thread after r. err is non-nil if r panicked.
	AfterExecute func(t *thread.Thread, r Runnable, err error)
	// WorkerExited runs on the worker thread as it leaves the pool, also when a
	// hook or task panic ended it between BeforeExecute and AfterExecute.
	WorkerExited func(t *thread.Thread)
	// Terminated runs once when the pool reaches PhaseTerminated.
	Terminated func()
}

// ChainHooks runs the hooks of each element in order.
func ChainHooks(hooks ...Hooks) Hooks {
	return Hooks{
		BeforeExecute: func(t *thread.Thread, r Runnable) {
			for _, h := range hooks {
				h.beforeExecute(t, r)
			}
		},
		AfterExecute: func(t *thread.Thread, r Runnable, err error) {
			for _, h := range hooks {
				h.afterExecute(t, r, err)
			}
		},
		WorkerExited: func(t *thread.Thread) {
			for _, h := range hooks {
				h.workerExited(t)
			}
		},
		Terminated: func() {
			for _, h := range hooks {
				h.terminated()
			}
		},
	}
}

func (h Hooks) beforeExecute(t *thread.Thread, r Runnable) {
	if h.BeforeExecute != nil {
		h.BeforeExecute(t, r)
	}
}

func (h Hooks) afterExecute(t *thread.Thread, r Runnable, err error) {
	if h.AfterExecute != nil {
		h.AfterExecute(t, r, err)
	}
}

func (h Hooks) workerExited(t *thread.Thread) {
	if h.WorkerExited != nil {
		h.WorkerExited(t)
	}
}

func (h Hooks) terminated() {
	if h.Terminated != nil {
		h.Terminated()
	}
}
