package executor

import (
	"context"
	"time"

	"github.com/tupyy/taskpool/pkg/errors"
	"github.com/tupyy/taskpool/pkg/future"
)

// Submit wraps c in a task and executes it.
func Submit[T any](e Executor, c future.Callable[T]) (*future.Task[T], error) {
	if c == nil {
		return nil, errors.NewIllegalArgumentError("callable is nil")
	}
	t := future.New(c)
	if err := e.Execute(t); err != nil {
		return nil, err
	}
	return t, nil
}

// SubmitRunnable executes r and returns a task completing when r returns.
func SubmitRunnable(e Executor, r Runnable) (*future.Task[struct{}], error) {
	if r == nil {
		return nil, errors.NewIllegalArgumentError("runnable is nil")
	}
	return Submit(e, future.FromRunnable(r.Run, struct{}{}))
}

// InvokeAll executes every callable and waits for all of them. Failures stay
// visible through the individual tasks. If waiting is interrupted or a
// submission is rejected every task is cancelled.
func InvokeAll[T any](ctx context.Context, e Executor, callables []future.Callable[T]) ([]*future.Task[T], error) {
	tasks := make([]*future.Task[T], 0, len(callables))
	done := false
	defer func() {
		if !done {
			cancelAll(tasks)
		}
	}()

	for _, c := range callables {
		t := future.New(c)
		tasks = append(tasks, t)
		if err := e.Execute(t); err != nil {
			return nil, err
		}
	}
	for _, t := range tasks {
		if t.IsDone() {
			continue
		}
		if _, err := t.Get(ctx); errors.IsInterruptedError(err) {
			return nil, err
		}
	}
	done = true
	return tasks, nil
}

// InvokeAllTimeout is InvokeAll with a shared deadline. Tasks not done when
// the deadline passes are cancelled; all tasks are still returned.
func InvokeAllTimeout[T any](ctx context.Context, e Executor, callables []future.Callable[T], timeout time.Duration) ([]*future.Task[T], error) {
	tasks := make([]*future.Task[T], 0, len(callables))
	for _, c := range callables {
		tasks = append(tasks, future.New(c))
	}
	done := false
	defer func() {
		if !done {
			cancelAll(tasks)
		}
	}()

	deadline := time.Now().Add(timeout)
	for _, t := range tasks {
		if err := e.Execute(t); err != nil {
			return nil, err
		}
		if time.Until(deadline) <= 0 {
			return tasks, nil
		}
	}
	for _, t := range tasks {
		if t.IsDone() {
			continue
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return tasks, nil
		}
		_, err := t.GetTimeout(ctx, remaining)
		switch {
		case errors.IsTimeoutError(err):
			return tasks, nil
		case errors.IsInterruptedError(err):
			return nil, err
		}
	}
	done = true
	return tasks, nil
}

// InvokeAny returns the result of the first callable to succeed and cancels
// the others. Callables are submitted one at a time, a new one each time no
// result is ready yet. If every callable fails the last failure is returned.
func InvokeAny[T any](ctx context.Context, e Executor, callables []future.Callable[T]) (T, error) {
	return invokeAny(ctx, e, callables, false, 0)
}

// InvokeAnyTimeout is InvokeAny returning a TimeoutError if no callable
// succeeded before timeout.
func InvokeAnyTimeout[T any](ctx context.Context, e Executor, callables []future.Callable[T], timeout time.Duration) (T, error) {
	return invokeAny(ctx, e, callables, true, timeout)
}

func invokeAny[T any](ctx context.Context, e Executor, callables []future.Callable[T], timed bool, timeout time.Duration) (T, error) {
	var zero T
	if len(callables) == 0 {
		return zero, errors.NewIllegalArgumentError("no callables")
	}

	cs := NewCompletionService[T](e)
	tasks := make([]*future.Task[T], 0, len(callables))
	defer func() { cancelAll(tasks) }()

	var deadline time.Time
	if timed {
		deadline = time.Now().Add(timeout)
	}

	submit := func(c future.Callable[T]) error {
		t, err := cs.Submit(c)
		if err != nil {
			return err
		}
		tasks = append(tasks, t)
		return nil
	}

	if err := submit(callables[0]); err != nil {
		return zero, err
	}
	next, active := 1, 1
	var lastErr error

	for {
		t, ok := cs.Poll()
		if !ok {
			switch {
			case next < len(callables):
				if err := submit(callables[next]); err != nil {
					return zero, err
				}
				next++
				active++
			case active == 0:
				if lastErr == nil {
					lastErr = errors.NewExecutionError(nil)
				}
				return zero, lastErr
			case timed:
				var err error
				t, ok, err = cs.PollTimeout(ctx, time.Until(deadline))
				if err != nil {
					return zero, err
				}
				if !ok {
					return zero, errors.NewTimeoutError(timeout)
				}
			default:
				var err error
				if t, err = cs.Take(ctx); err != nil {
					return zero, err
				}
				ok = true
			}
		}
		if ok {
			active--
			v, err := t.Get(ctx)
			if err == nil {
				return v, nil
			}
			if errors.IsInterruptedError(err) {
				return zero, err
			}
			lastErr = err
		}
	}
}

func cancelAll[T any](tasks []*future.Task[T]) {
	for _, t := range tasks {
		t.Cancel(true)
	}
}
