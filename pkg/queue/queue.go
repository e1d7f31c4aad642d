package queue

import (
	"context"
	"reflect"
	"time"
)

// BlockingQueue is a FIFO container shared between producers that never block
// and consumers that may wait for an element.
type BlockingQueue[T any] interface {
	// Offer inserts item if capacity allows and reports whether it did.
	Offer(item T) bool
	// Poll removes the head without waiting.
	Poll() (T, bool)
	// PollTimeout waits up to timeout for an element. A cancelled ctx returns an InterruptedError.
	PollTimeout(ctx context.Context, timeout time.Duration) (T, bool, error)
	// Take waits until an element is available or ctx is cancelled.
	Take(ctx context.Context) (T, error)
	// Peek returns the head without removing it.
	Peek() (T, bool)
	// Remove removes one element identical to item.
	Remove(item T) bool
	// DrainAll removes and returns every element in FIFO order.
	DrainAll() []T
	// Items returns a snapshot of the queued elements.
	Items() []T
	Size() int
	IsEmpty() bool
	RemainingCapacity() int
}

// same compares a and b by identity. Values whose dynamic type is not
// comparable (funcs, slices, maps) are never equal.
func same[T any](a, b T) bool {
	va, vb := any(a), any(b)
	if va == nil || vb == nil {
		return va == vb
	}
	ta := reflect.TypeOf(va)
	if ta != reflect.TypeOf(vb) || !ta.Comparable() {
		return false
	}
	return va == vb
}

var (
	_ BlockingQueue[any] = (*FIFO[any])(nil)
	_ BlockingQueue[any] = (*Synchronous[any])(nil)
)
