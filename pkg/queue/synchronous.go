package queue

import (
	"context"
	"time"

	"github.com/tupyy/taskpool/pkg/errors"
)

// Synchronous is a queue without capacity: Offer succeeds only when a
// consumer is already waiting in Take or PollTimeout.
type Synchronous[T any] struct {
	handoff chan T
}

func NewSynchronous[T any]() *Synchronous[T] {
	return &Synchronous[T]{handoff: make(chan T)}
}

func (q *Synchronous[T]) Offer(item T) bool {
	select {
	case q.handoff <- item:
		return true
	default:
		return false
	}
}

func (q *Synchronous[T]) Poll() (T, bool) {
	select {
	case v := <-q.handoff:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

func (q *Synchronous[T]) PollTimeout(ctx context.Context, timeout time.Duration) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, errors.NewInterruptedError(err)
	}
	if timeout <= 0 {
		v, ok := q.Poll()
		return v, ok, nil
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case v := <-q.handoff:
		return v, true, nil
	case <-ctx.Done():
		return zero, false, errors.NewInterruptedError(ctx.Err())
	case <-timer.C:
		return zero, false, nil
	}
}

func (q *Synchronous[T]) Take(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, errors.NewInterruptedError(err)
	}
	select {
	case v := <-q.handoff:
		return v, nil
	case <-ctx.Done():
		return zero, errors.NewInterruptedError(ctx.Err())
	}
}

func (q *Synchronous[T]) Peek() (T, bool) {
	var zero T
	return zero, false
}

func (q *Synchronous[T]) Remove(T) bool { return false }

func (q *Synchronous[T]) DrainAll() []T { return nil }

func (q *Synchronous[T]) Items() []T { return nil }

func (q *Synchronous[T]) Size() int { return 0 }

func (q *Synchronous[T]) IsEmpty() bool { return true }

func (q *Synchronous[T]) RemainingCapacity() int { return 0 }
