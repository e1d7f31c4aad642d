package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/tupyy/taskpool/pkg/errors"
)

// RejectedExecutionHandler decides what happens to a task the pool cannot accept.
type RejectedExecutionHandler interface {
	RejectedExecution(r Runnable, p *Pool) error
}

type RejectedExecutionHandlerFunc func(r Runnable, p *Pool) error

func (f RejectedExecutionHandlerFunc) RejectedExecution(r Runnable, p *Pool) error {
	return f(r, p)
}

// AbortPolicy returns a RejectedExecutionError.
type AbortPolicy struct{}

func (AbortPolicy) RejectedExecution(r Runnable, p *Pool) error {
	return errors.NewRejectedExecutionError(fmt.Sprintf("task %v rejected from %s", r, p))
}

// CallerRunsPolicy runs the task on the submitting goroutine unless the pool is shut down.
type CallerRunsPolicy struct{}

func (CallerRunsPolicy) RejectedExecution(r Runnable, p *Pool) error {
	if !p.IsShutdown() {
		r.Run(context.Background())
	}
	return nil
}

// DiscardPolicy drops the task.
type DiscardPolicy struct{}

func (DiscardPolicy) RejectedExecution(Runnable, *Pool) error {
	return nil
}

// DiscardOldestPolicy drops the head of the queue and tries once more to
// admit the task, unless the pool is shut down. With nothing queued to drop,
// as with a Synchronous queue, the task is rejected.
type DiscardOldestPolicy struct{}

func (DiscardOldestPolicy) RejectedExecution(r Runnable, p *Pool) error {
	if p.IsShutdown() {
		return nil
	}
	if _, ok := p.Queue().Poll(); !ok {
		return errors.NewRejectedExecutionError(fmt.Sprintf("task %v rejected from %s: no queued task to discard", r, p))
	}
	if !p.admit(r) {
		return errors.NewRejectedExecutionError(fmt.Sprintf("task %v rejected from %s after discarding the oldest task", r, p))
	}
	return nil
}

// RetryPolicy tries to admit the task again with exponential back-off. It
// gives up with a RejectedExecutionError once MaxElapsedTime has passed or
// the pool is shut down. The submitting goroutine blocks meanwhile.
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

func (rp RetryPolicy) RejectedExecution(r Runnable, p *Pool) error {
	b := backoff.NewExponentialBackOff()
	if rp.InitialInterval > 0 {
		b.InitialInterval = rp.InitialInterval
	}
	if rp.MaxInterval > 0 {
		b.MaxInterval = rp.MaxInterval
	}
	maxElapsed := rp.MaxElapsedTime
	if maxElapsed <= 0 {
		maxElapsed = time.Second
	}

	attempts := 0
	_, err := backoff.Retry(context.Background(), func() (struct{}, error) {
		attempts++
		if p.IsShutdown() {
			return struct{}{}, backoff.Permanent(errors.NewRejectedExecutionError("pool is shut down"))
		}
		if !p.admit(r) {
			return struct{}{}, errors.NewRejectedExecutionError("pool saturated")
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(maxElapsed))
	if err != nil {
		p.logger().Debugw("retry exhausted", "task", fmt.Sprint(r), "attempts", attempts, "error", err)
		return errors.NewRejectedExecutionErrorWithCause(fmt.Sprintf("task %v rejected from %s after %d attempts", r, p, attempts), err)
	}
	return nil
}
