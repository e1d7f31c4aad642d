package future

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/tupyy/taskpool/pkg/errors"
)

type Callable[T any] func(ctx context.Context) (T, error)

// FromRunnable adapts fn into a Callable returning result.
func FromRunnable[T any](fn func(ctx context.Context), result T) Callable[T] {
	return func(ctx context.Context) (T, error) {
		fn(ctx)
		return result, nil
	}
}

type runner struct {
	interrupt func()
}

// Task is a cancellable computation whose result is set exactly once.
//
// Run executes the callable at most once. Get blocks until the outcome is
// known. Cancel settles the task without a result and optionally cancels
// the context of the running callable.
type Task[T any] struct {
	state    atomic.Int32
	callable atomic.Pointer[Callable[T]]
	value    T
	err      error
	runner   atomic.Pointer[runner]
	waiters  atomic.Pointer[waitNode]
	done     func(*Task[T])
}

func New[T any](c Callable[T]) *Task[T] {
	return NewWithDone(c, nil)
}

// NewWithDone creates a task that calls done once it reaches a terminal
// state, after its waiters have been woken.
func NewWithDone[T any](c Callable[T], done func(*Task[T])) *Task[T] {
	if c == nil {
		panic("future: nil callable")
	}
	t := &Task[T]{done: done}
	t.callable.Store(&c)
	return t
}

func (t *Task[T]) State() State {
	return State(t.state.Load())
}

func (t *Task[T]) IsCancelled() bool {
	return t.State() >= Cancelled
}

func (t *Task[T]) IsDone() bool {
	return t.State() != StateNew
}

// Run executes the callable with a context derived from ctx. It does nothing
// if the task is no longer new or another goroutine is already running it.
func (t *Task[T]) Run(ctx context.Context) {
	if t.State() != StateNew {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if !t.runner.CompareAndSwap(nil, &runner{interrupt: cancel}) {
		return
	}
	defer func() {
		// the runner stays set until the state settles so Run cannot be re-entered
		t.runner.Store(nil)
		if s := t.State(); s >= Interrupting {
			t.awaitInterrupt(s)
		}
	}()

	c := t.callable.Load()
	if c != nil && t.State() == StateNew {
		v, err := call(runCtx, *c)
		if err != nil {
			t.setException(err)
		} else {
			t.set(v)
		}
	}
}

func (t *Task[T]) set(v T) {
	if t.state.CompareAndSwap(int32(StateNew), int32(Completing)) {
		t.value = v
		t.state.Store(int32(Normal))
		t.finishCompletion()
	}
}

func (t *Task[T]) setException(err error) {
	if t.state.CompareAndSwap(int32(StateNew), int32(Completing)) {
		t.err = err
		t.state.Store(int32(Exceptional))
		t.finishCompletion()
	}
}

// awaitInterrupt waits for a concurrent Cancel(true) to finish delivering its interrupt.
func (t *Task[T]) awaitInterrupt(s State) {
	for s == Interrupting {
		runtime.Gosched()
		s = t.State()
	}
}

// Cancel settles a new task as cancelled. With mayInterrupt set the context of
// a running callable is cancelled too. It returns false if the task was
// already done.
func (t *Task[T]) Cancel(mayInterrupt bool) bool {
	target := Cancelled
	if mayInterrupt {
		target = Interrupting
	}
	if !t.state.CompareAndSwap(int32(StateNew), int32(target)) {
		return false
	}
	if mayInterrupt {
		func() {
			defer t.state.Store(int32(Interrupted))
			if r := t.runner.Load(); r != nil {
				r.interrupt()
			}
		}()
	}
	t.finishCompletion()
	return true
}

// Get waits for the outcome. A cancelled ctx returns an InterruptedError.
func (t *Task[T]) Get(ctx context.Context) (T, error) {
	s := t.State()
	if s <= Completing {
		var err error
		if s, err = t.awaitDone(ctx, false, 0); err != nil {
			var zero T
			return zero, err
		}
	}
	return t.report(s)
}

// GetTimeout is Get bounded by timeout; it returns a TimeoutError when the
// outcome is still unknown at the deadline.
func (t *Task[T]) GetTimeout(ctx context.Context, timeout time.Duration) (T, error) {
	var zero T
	s := t.State()
	if s <= Completing {
		var err error
		if s, err = t.awaitDone(ctx, true, timeout); err != nil {
			return zero, err
		}
		if s <= Completing {
			return zero, errors.NewTimeoutError(timeout)
		}
	}
	return t.report(s)
}

func (t *Task[T]) report(s State) (T, error) {
	var zero T
	switch {
	case s == Normal:
		return t.value, nil
	case s >= Cancelled:
		return zero, errors.NewCancellationError()
	default:
		return zero, errors.NewExecutionError(t.err)
	}
}

func (t *Task[T]) awaitDone(ctx context.Context, timed bool, timeout time.Duration) (State, error) {
	var deadline time.Time
	if timed {
		deadline = time.Now().Add(timeout)
	}
	var q *waitNode
	queued := false
	for {
		if err := ctx.Err(); err != nil {
			t.removeWaiter(q)
			return t.State(), errors.NewInterruptedError(err)
		}

		s := t.State()
		switch {
		case s > Completing:
			if q != nil {
				q.active.Store(false)
			}
			return s, nil
		case s == Completing:
			runtime.Gosched()
		case q == nil:
			q = newWaitNode()
		case !queued:
			head := t.waiters.Load()
			q.next.Store(head)
			queued = t.waiters.CompareAndSwap(head, q)
		case timed:
			remaining := time.Until(deadline)
			if remaining <= 0 {
				t.removeWaiter(q)
				return t.State(), nil
			}
			q.parkTimeout(ctx, remaining)
		default:
			q.park(ctx)
		}
	}
}

func (t *Task[T]) String() string {
	var status string
	switch s := t.State(); {
	case s == Normal:
		status = "[Completed normally]"
	case s == Exceptional:
		status = fmt.Sprintf("[Completed exceptionally: %v]", t.err)
	case s >= Cancelled:
		status = "[Cancelled]"
	default:
		status = "[Not completed]"
	}
	return fmt.Sprintf("future.Task@%p%s", t, status)
}

func call[T any](ctx context.Context, c Callable[T]) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewPanicError(r, debug.Stack())
		}
	}()
	return c(ctx)
}
