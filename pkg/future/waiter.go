package future

import (
	"context"
	"sync/atomic"
	"time"
)

// waitNode is one parked caller of Get. wake holds at most one permit.
type waitNode struct {
	wake   chan struct{}
	active atomic.Bool
	next   atomic.Pointer[waitNode]
}

func newWaitNode() *waitNode {
	n := &waitNode{wake: make(chan struct{}, 1)}
	n.active.Store(true)
	return n
}

func (n *waitNode) unpark() {
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

func (n *waitNode) park(ctx context.Context) {
	select {
	case <-n.wake:
	case <-ctx.Done():
	}
}

func (n *waitNode) parkTimeout(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-n.wake:
	case <-ctx.Done():
	case <-timer.C:
	}
}

// finishCompletion detaches the waiter stack and wakes every node still active.
func (t *Task[T]) finishCompletion() {
	for q := t.waiters.Load(); q != nil; q = t.waiters.Load() {
		if t.waiters.CompareAndSwap(q, nil) {
			for q != nil {
				if q.active.Swap(false) {
					q.unpark()
				}
				next := q.next.Load()
				q.next.Store(nil)
				q = next
			}
			break
		}
	}

	if t.done != nil {
		t.done(t)
	}
	t.callable.Store(nil)
}

// removeWaiter unlinks node and any other inactive nodes. A race with a
// concurrent unlink or completion restarts the scan.
func (t *Task[T]) removeWaiter(node *waitNode) {
	if node == nil {
		return
	}
	node.active.Store(false)
retry:
	for {
		var pred, s *waitNode
		for q := t.waiters.Load(); q != nil; q = s {
			s = q.next.Load()
			if q.active.Load() {
				pred = q
			} else if pred != nil {
				pred.next.Store(s)
				if !pred.active.Load() {
					continue retry
				}
			} else if !t.waiters.CompareAndSwap(q, s) {
				continue retry
			}
		}
		return
	}
}
