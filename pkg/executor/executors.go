package executor

import (
	"math"
	"time"

	"github.com/tupyy/taskpool/pkg/queue"
)

// NewFixedThreadPool creates a pool of n workers sharing an unbounded queue.
func NewFixedThreadPool(n int, opts ...Option) (*Pool, error) {
	return New(n, n, 0, queue.NewUnbounded[Runnable](), opts...)
}

// NewCachedThreadPool creates a pool that starts workers on demand, hands tasks
// over without queueing them and retires workers idle for a minute.
func NewCachedThreadPool(opts ...Option) (*Pool, error) {
	return New(0, math.MaxInt32, 60*time.Second, queue.NewSynchronous[Runnable](), opts...)
}

// NewSingleThreadExecutor creates a pool running tasks one at a time in
// submission order.
func NewSingleThreadExecutor(opts ...Option) (*Pool, error) {
	return New(1, 1, 0, queue.NewUnbounded[Runnable](), opts...)
}
