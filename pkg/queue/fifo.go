package queue

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/tupyy/taskpool/pkg/errors"
)

// FIFO is an optionally bounded, slice backed queue. A capacity of zero means
// unbounded.
type FIFO[T any] struct {
	mu       sync.Mutex
	items    []T
	capacity int
	notEmpty chan struct{}
}

func NewFIFO[T any](capacity int) *FIFO[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &FIFO[T]{
		capacity: capacity,
		notEmpty: make(chan struct{}, 1),
	}
}

func NewUnbounded[T any]() *FIFO[T] {
	return NewFIFO[T](0)
}

func (q *FIFO[T]) Offer(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.capacity > 0 && len(q.items) >= q.capacity {
		return false
	}
	q.items = append(q.items, item)
	q.signal()
	return true
}

func (q *FIFO[T]) Poll() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dequeue()
}

func (q *FIFO[T]) PollTimeout(ctx context.Context, timeout time.Duration) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, errors.NewInterruptedError(err)
	}
	if v, ok := q.Poll(); ok {
		return v, true, nil
	}
	if timeout <= 0 {
		return zero, false, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-q.notEmpty:
			if v, ok := q.Poll(); ok {
				return v, true, nil
			}
		case <-ctx.Done():
			return zero, false, errors.NewInterruptedError(ctx.Err())
		case <-timer.C:
			v, ok := q.Poll()
			return v, ok, nil
		}
	}
}

func (q *FIFO[T]) Take(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, errors.NewInterruptedError(err)
	}
	for {
		if v, ok := q.Poll(); ok {
			return v, nil
		}
		select {
		case <-q.notEmpty:
		case <-ctx.Done():
			return zero, errors.NewInterruptedError(ctx.Err())
		}
	}
}

func (q *FIFO[T]) Peek() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

func (q *FIFO[T]) Remove(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		if same(q.items[i], item) {
			var zero T
			copy(q.items[i:], q.items[i+1:])
			q.items[len(q.items)-1] = zero
			q.items = q.items[:len(q.items)-1]
			return true
		}
	}
	return false
}

func (q *FIFO[T]) DrainAll() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

func (q *FIFO[T]) Items() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]T, len(q.items))
	copy(out, q.items)
	return out
}

func (q *FIFO[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *FIFO[T]) IsEmpty() bool {
	return q.Size() == 0
}

func (q *FIFO[T]) RemainingCapacity() int {
	if q.capacity == 0 {
		return math.MaxInt
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.capacity - len(q.items)
}

// dequeue must be called with mu held. A consumer that leaves elements
// behind passes the signal on to the next waiting consumer.
func (q *FIFO[T]) dequeue() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) > 0 {
		q.signal()
	}
	return v, true
}

func (q *FIFO[T]) signal() {
	select {
	case q.notEmpty <- struct{}{}:
	default:
	}
}
