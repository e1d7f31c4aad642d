package thread

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/tupyy/taskpool/pkg/errors"
)

// Thread is a goroutine with an identity and an interrupt status.
//
// An interrupt cancels the thread's current context. Code running on the
// thread observes interrupts through Context(); ClearInterrupt resets the
// status and installs a fresh context.
type Thread struct {
	name    string
	run     func()
	started atomic.Bool
	done    chan struct{}

	mu          sync.Mutex
	interrupted bool
	ctx         context.Context
	cancel      context.CancelFunc
}

func New(name string, run func()) *Thread {
	ctx, cancel := context.WithCancel(context.Background())
	return &Thread{
		name:   name,
		run:    run,
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (t *Thread) Name() string {
	return t.name
}

// Start launches the goroutine. A thread can be started only once.
func (t *Thread) Start() error {
	if !t.started.CompareAndSwap(false, true) {
		return errors.NewIllegalStateError("thread %q already started", t.name)
	}
	go func() {
		defer close(t.done)
		if t.run != nil {
			t.run()
		}
	}()
	return nil
}

func (t *Thread) Started() bool {
	return t.started.Load()
}

func (t *Thread) Alive() bool {
	if !t.started.Load() {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Done is closed when the goroutine returns.
func (t *Thread) Done() <-chan struct{} {
	return t.done
}

// Join waits for the goroutine to return or ctx to be cancelled.
func (t *Thread) Join(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return errors.NewInterruptedError(ctx.Err())
	}
}

func (t *Thread) Interrupt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interrupted = true
	t.cancel()
}

func (t *Thread) IsInterrupted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interrupted
}

// ClearInterrupt reports whether the thread was interrupted and clears the status.
func (t *Thread) ClearInterrupt() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.interrupted {
		return false
	}
	t.interrupted = false
	t.ctx, t.cancel = context.WithCancel(context.Background())
	return true
}

// Context returns the context cancelled by the next interrupt.
func (t *Thread) Context() context.Context {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctx
}

func (t *Thread) String() string {
	return "Thread[" + t.name + "]"
}
