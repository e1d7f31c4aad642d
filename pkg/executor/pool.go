package executor

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tupyy/taskpool/pkg/errors"
	"github.com/tupyy/taskpool/pkg/queue"
	"github.com/tupyy/taskpool/pkg/thread"
)

type factoryBox struct{ f thread.Factory }

type handlerBox struct{ h RejectedExecutionHandler }

// Pool runs submitted work on a dynamically sized set of worker threads.
//
// Workers are added up to the core size for every new task, then tasks are
// queued, then workers are added up to the maximum size. Workers above the
// core size exit after staying idle for the keep-alive time. When none of
// this is possible the rejection handler decides the fate of the task.
type Pool struct {
	id    uuid.UUID
	ctl   atomic.Int32
	queue queue.BlockingQueue[Runnable]

	// mainLock guards workers, largestPoolSize and completedTaskCount.
	mainLock           sync.Mutex
	workers            map[*worker]struct{}
	largestPoolSize    int
	completedTaskCount uint64

	// termination is closed once the pool is terminated.
	termination chan struct{}

	corePoolSize           atomic.Int32
	maximumPoolSize        atomic.Int32
	keepAliveTime          atomic.Int64
	allowCoreThreadTimeOut atomic.Bool
	threadFactory          atomic.Pointer[factoryBox]
	handler                atomic.Pointer[handlerBox]
	rejectedCount          atomic.Uint64

	hooks Hooks
	log   *zap.SugaredLogger
}

// New creates a pool. q must not be shared with another pool.
func New(corePoolSize, maximumPoolSize int, keepAlive time.Duration, q queue.BlockingQueue[Runnable], opts ...Option) (*Pool, error) {
	if corePoolSize < 0 || maximumPoolSize <= 0 || maximumPoolSize < corePoolSize || keepAlive < 0 {
		return nil, errors.NewIllegalArgumentError("core=%d max=%d keepAlive=%s", corePoolSize, maximumPoolSize, keepAlive)
	}
	if q == nil {
		return nil, errors.NewIllegalArgumentError("queue is nil")
	}

	p := &Pool{
		id:          uuid.New(),
		queue:       q,
		workers:     make(map[*worker]struct{}),
		termination: make(chan struct{}),
	}
	p.ctl.Store(ctlOf(running, 0))
	p.corePoolSize.Store(int32(corePoolSize))
	p.maximumPoolSize.Store(clampSize(maximumPoolSize))
	p.keepAliveTime.Store(int64(keepAlive))
	p.threadFactory.Store(&factoryBox{thread.DefaultFactory()})
	p.handler.Store(&handlerBox{AbortPolicy{}})

	for _, opt := range opts {
		opt(p)
	}

	if p.allowCoreThreadTimeOut.Load() && keepAlive <= 0 {
		return nil, errors.NewIllegalArgumentError("core threads must have nonzero keep alive times")
	}
	if p.ThreadFactory() == nil || p.RejectedExecutionHandler() == nil {
		return nil, errors.NewIllegalArgumentError("thread factory and rejection handler are required")
	}

	p.logger().Debugw("pool created", "core", corePoolSize, "max", maximumPoolSize, "keep_alive", keepAlive)
	return p, nil
}

func clampSize(n int) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}

func (p *Pool) ID() uuid.UUID {
	return p.id
}

func (p *Pool) logger() *zap.SugaredLogger {
	if p.log != nil {
		return p.log
	}
	return zap.S().Named("executor")
}

// Execute runs r at some point in the future on a pool worker. It returns the
// rejection handler's error when r cannot be accepted.
func (p *Pool) Execute(r Runnable) error {
	if r == nil {
		return errors.NewIllegalArgumentError("runnable is nil")
	}
	if p.admit(r) {
		return nil
	}
	return p.reject(r)
}

// admit starts a core worker for r, queues it, or starts a non-core worker.
func (p *Pool) admit(r Runnable) bool {
	c := p.ctl.Load()
	if workerCountOf(c) < p.corePoolSize.Load() {
		if p.addWorker(r, true) {
			return true
		}
		c = p.ctl.Load()
	}
	if isRunning(c) && p.queue.Offer(r) {
		recheck := p.ctl.Load()
		if !isRunning(recheck) && p.Remove(r) {
			return false
		}
		if workerCountOf(recheck) == 0 {
			p.addWorker(nil, false)
		}
		return true
	}
	return p.addWorker(r, false)
}

func (p *Pool) reject(r Runnable) error {
	p.rejectedCount.Add(1)
	return p.RejectedExecutionHandler().RejectedExecution(r, p)
}

// addWorker reserves a slot in the worker count, bounded by the core or the
// maximum size, then creates and starts the worker. Any failure after the
// reservation is rolled back.
func (p *Pool) addWorker(firstTask Runnable, core bool) bool {
retry:
	for {
		c := p.ctl.Load()
		rs := runStateOf(c)

		// after shutdown only queue-draining workers may be added
		if rs >= shutdown && !(rs == shutdown && firstTask == nil && !p.queue.IsEmpty()) {
			return false
		}

		for {
			wc := workerCountOf(c)
			bound := p.maximumPoolSize.Load()
			if core {
				bound = p.corePoolSize.Load()
			}
			if wc >= capacity || wc >= bound {
				return false
			}
			if p.ctl.CompareAndSwap(c, c+1) {
				break retry
			}
			c = p.ctl.Load()
			if runStateOf(c) != rs {
				continue retry
			}
		}
	}

	started := false
	w := p.newWorker(firstTask)
	if t := w.thread; t != nil {
		added := false
		p.mainLock.Lock()
		rs := runStateOf(p.ctl.Load())
		if (rs < shutdown || (rs == shutdown && firstTask == nil)) && !t.Started() {
			p.workers[w] = struct{}{}
			if s := len(p.workers); s > p.largestPoolSize {
				p.largestPoolSize = s
			}
			added = true
		}
		p.mainLock.Unlock()

		if added {
			started = t.Start() == nil
		}
	}
	if !started {
		p.addWorkerFailed(w)
	}
	return started
}

func (p *Pool) addWorkerFailed(w *worker) {
	p.mainLock.Lock()
	delete(p.workers, w)
	p.mainLock.Unlock()
	p.decrementWorkerCount()
	p.tryTerminate()
}

func (p *Pool) decrementWorkerCount() {
	p.ctl.Add(-1)
}

// tryTerminate moves the pool to TERMINATED if it is shut down with no
// workers and an empty queue. While workers remain it interrupts one idle
// worker so the shutdown signal keeps propagating. It must be called without
// mainLock held.
func (p *Pool) tryTerminate() {
	for {
		c := p.ctl.Load()
		if isRunning(c) || runStateAtLeast(c, tidying) ||
			(runStateOf(c) == shutdown && !p.queue.IsEmpty()) {
			return
		}
		if workerCountOf(c) != 0 {
			p.interruptIdleWorkers(true)
			return
		}

		// only the goroutine winning this CAS runs the hook and closes termination
		if p.ctl.CompareAndSwap(c, ctlOf(tidying, 0)) {
			p.runTerminatedHook()
			p.ctl.Store(ctlOf(terminated, 0))
			close(p.termination)
			p.logger().Debugw("pool terminated", "pool", p.id)
			return
		}
	}
}

func (p *Pool) runTerminatedHook() {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger().Errorw("terminated hook panicked", "pool", p.id, "panic", rec)
		}
	}()
	p.hooks.terminated()
}

func (p *Pool) advanceRunState(target int32) {
	for {
		c := p.ctl.Load()
		if runStateAtLeast(c, target) || p.ctl.CompareAndSwap(c, ctlOf(target, workerCountOf(c))) {
			return
		}
	}
}

func (p *Pool) interruptIdleWorkers(onlyOne bool) {
	p.mainLock.Lock()
	defer p.mainLock.Unlock()
	p.interruptIdleWorkersLocked(onlyOne)
}

// interruptIdleWorkersLocked interrupts workers whose gate is free, i.e.
// workers waiting for a task.
func (p *Pool) interruptIdleWorkersLocked(onlyOne bool) {
	for w := range p.workers {
		t := w.thread
		if !t.IsInterrupted() && w.tryLock() {
			t.Interrupt()
			w.unlock()
		}
		if onlyOne {
			return
		}
	}
}

// Shutdown stops accepting new work. Queued tasks still run. It does not
// wait; use AwaitTermination for that.
func (p *Pool) Shutdown() {
	p.mainLock.Lock()
	p.advanceRunState(shutdown)
	p.interruptIdleWorkersLocked(false)
	p.mainLock.Unlock()
	p.logger().Debugw("pool shut down", "pool", p.id)
	p.tryTerminate()
}

// ShutdownNow stops accepting new work, interrupts every worker and returns
// the tasks that never started.
func (p *Pool) ShutdownNow() []Runnable {
	p.mainLock.Lock()
	p.advanceRunState(stop)
	for w := range p.workers {
		w.interruptIfStarted()
	}
	tasks := p.drainQueue()
	p.mainLock.Unlock()
	p.logger().Debugw("pool stopped", "pool", p.id, "drained", len(tasks))
	p.tryTerminate()
	return tasks
}

func (p *Pool) drainQueue() []Runnable {
	tasks := p.queue.DrainAll()
	if !p.queue.IsEmpty() {
		for _, r := range p.queue.Items() {
			if p.queue.Remove(r) {
				tasks = append(tasks, r)
			}
		}
	}
	return tasks
}

func (p *Pool) IsShutdown() bool {
	return !isRunning(p.ctl.Load())
}

// IsTerminating reports whether the pool is shutting down but not yet terminated.
func (p *Pool) IsTerminating() bool {
	c := p.ctl.Load()
	return !isRunning(c) && runStateLessThan(c, terminated)
}

func (p *Pool) IsTerminated() bool {
	return runStateAtLeast(p.ctl.Load(), terminated)
}

func (p *Pool) Phase() Phase {
	return Phase(runStateOf(p.ctl.Load()))
}

// Terminated is closed when the pool reaches PhaseTerminated.
func (p *Pool) Terminated() <-chan struct{} {
	return p.termination
}

// AwaitTermination blocks until the pool terminates, timeout elapses or ctx
// is cancelled. It reports whether the pool terminated.
func (p *Pool) AwaitTermination(ctx context.Context, timeout time.Duration) (bool, error) {
	select {
	case <-p.termination:
		return true, nil
	default:
	}
	if timeout <= 0 {
		return false, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-p.termination:
		return true, nil
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, errors.NewInterruptedError(ctx.Err())
	}
}

// Remove removes r from the queue if it has not started.
func (p *Pool) Remove(r Runnable) bool {
	removed := p.queue.Remove(r)
	p.tryTerminate()
	return removed
}

// Purge removes every queued task that has been cancelled.
func (p *Pool) Purge() {
	for _, r := range p.queue.Items() {
		if c, ok := r.(Cancellable); ok && c.IsCancelled() {
			p.queue.Remove(r)
		}
	}
	p.tryTerminate()
}

// Queue returns the task queue. It is meant for monitoring.
func (p *Pool) Queue() queue.BlockingQueue[Runnable] {
	return p.queue
}

func (p *Pool) SetCorePoolSize(n int) error {
	if n < 0 || int32(n) > p.maximumPoolSize.Load() {
		return errors.NewIllegalArgumentError("core pool size %d", n)
	}
	size := int32(n)
	delta := size - p.corePoolSize.Swap(size)
	if workerCountOf(p.ctl.Load()) > size {
		p.interruptIdleWorkers(false)
	} else if delta > 0 {
		// start enough workers for the queued tasks, no more than delta
		for k := min(int(delta), p.queue.Size()); k > 0; k-- {
			if !p.addWorker(nil, true) || p.queue.IsEmpty() {
				break
			}
		}
	}
	return nil
}

func (p *Pool) CorePoolSize() int {
	return int(p.corePoolSize.Load())
}

func (p *Pool) SetMaximumPoolSize(n int) error {
	if n <= 0 || n < p.CorePoolSize() {
		return errors.NewIllegalArgumentError("maximum pool size %d", n)
	}
	size := clampSize(n)
	p.maximumPoolSize.Store(size)
	if workerCountOf(p.ctl.Load()) > size {
		p.interruptIdleWorkers(false)
	}
	return nil
}

func (p *Pool) MaximumPoolSize() int {
	return int(p.maximumPoolSize.Load())
}

func (p *Pool) SetKeepAliveTime(d time.Duration) error {
	if d < 0 {
		return errors.NewIllegalArgumentError("keep alive %s", d)
	}
	if d == 0 && p.AllowsCoreThreadTimeOut() {
		return errors.NewIllegalArgumentError("core threads must have nonzero keep alive times")
	}
	old := time.Duration(p.keepAliveTime.Swap(int64(d)))
	if d < old {
		p.interruptIdleWorkers(false)
	}
	return nil
}

func (p *Pool) KeepAliveTime() time.Duration {
	return time.Duration(p.keepAliveTime.Load())
}

// AllowCoreThreadTimeOut sets whether core workers exit after the keep-alive
// time when idle.
func (p *Pool) AllowCoreThreadTimeOut(v bool) error {
	if v && p.KeepAliveTime() <= 0 {
		return errors.NewIllegalArgumentError("core threads must have nonzero keep alive times")
	}
	if p.allowCoreThreadTimeOut.Swap(v) != v && v {
		p.interruptIdleWorkers(false)
	}
	return nil
}

func (p *Pool) AllowsCoreThreadTimeOut() bool {
	return p.allowCoreThreadTimeOut.Load()
}

func (p *Pool) SetThreadFactory(f thread.Factory) error {
	if f == nil {
		return errors.NewIllegalArgumentError("thread factory is nil")
	}
	p.threadFactory.Store(&factoryBox{f})
	return nil
}

func (p *Pool) ThreadFactory() thread.Factory {
	return p.threadFactory.Load().f
}

func (p *Pool) SetRejectedExecutionHandler(h RejectedExecutionHandler) error {
	if h == nil {
		return errors.NewIllegalArgumentError("rejected execution handler is nil")
	}
	p.handler.Store(&handlerBox{h})
	return nil
}

func (p *Pool) RejectedExecutionHandler() RejectedExecutionHandler {
	return p.handler.Load().h
}

// PrestartCoreThread starts an idle core worker if fewer than the core size are running.
func (p *Pool) PrestartCoreThread() bool {
	return workerCountOf(p.ctl.Load()) < p.corePoolSize.Load() && p.addWorker(nil, true)
}

// PrestartAllCoreThreads starts idle workers up to the core size and returns how many were started.
func (p *Pool) PrestartAllCoreThreads() int {
	n := 0
	for p.addWorker(nil, true) {
		n++
	}
	return n
}

func (p *Pool) PoolSize() int {
	p.mainLock.Lock()
	defer p.mainLock.Unlock()
	if runStateAtLeast(p.ctl.Load(), tidying) {
		return 0
	}
	return len(p.workers)
}

// ActiveCount is the approximate number of workers running a task.
func (p *Pool) ActiveCount() int {
	p.mainLock.Lock()
	defer p.mainLock.Unlock()
	n := 0
	for w := range p.workers {
		if w.isLocked() {
			n++
		}
	}
	return n
}

func (p *Pool) LargestPoolSize() int {
	p.mainLock.Lock()
	defer p.mainLock.Unlock()
	return p.largestPoolSize
}

// TaskCount is the approximate number of tasks ever scheduled.
func (p *Pool) TaskCount() uint64 {
	p.mainLock.Lock()
	defer p.mainLock.Unlock()
	n := p.completedTaskCount
	for w := range p.workers {
		n += w.completedTasks.Load()
		if w.isLocked() {
			n++
		}
	}
	return n + uint64(p.queue.Size())
}

// CompletedTaskCount is the approximate number of tasks that finished.
func (p *Pool) CompletedTaskCount() uint64 {
	p.mainLock.Lock()
	defer p.mainLock.Unlock()
	n := p.completedTaskCount
	for w := range p.workers {
		n += w.completedTasks.Load()
	}
	return n
}

func (p *Pool) RejectedTaskCount() uint64 {
	return p.rejectedCount.Load()
}

func (p *Pool) String() string {
	s := p.Stats()
	return fmt.Sprintf("executor.Pool@%s[%s, pool size = %d, active threads = %d, queued tasks = %d, completed tasks = %d]",
		s.ID, s.Phase, s.PoolSize, s.ActiveCount, s.QueuedTasks, s.CompletedTaskCount)
}
