package executor

import (
	"runtime"
	"runtime/debug"
	"sync/atomic"

	"github.com/tupyy/taskpool/pkg/errors"
	"github.com/tupyy/taskpool/pkg/thread"
)

const (
	gateUninitialized int32 = -1
	gateUnlocked      int32 = 0
	gateLocked        int32 = 1
)

// worker owns one thread. Its gate is held while a task runs so that
// interrupts meant for idle workers never reach a running task. The gate
// starts uninitialized, which also blocks interrupts until the run loop begins.
type worker struct {
	thread         *thread.Thread
	firstTask      Runnable
	completedTasks atomic.Uint64
	gate           atomic.Int32
}

func (p *Pool) newWorker(firstTask Runnable) *worker {
	w := &worker{firstTask: firstTask}
	w.gate.Store(gateUninitialized)
	w.thread = p.ThreadFactory().NewThread(func() { p.runWorker(w) })
	return w
}

func (w *worker) tryLock() bool {
	return w.gate.CompareAndSwap(gateUnlocked, gateLocked)
}

func (w *worker) lock() {
	for !w.tryLock() {
		runtime.Gosched()
	}
}

func (w *worker) unlock() {
	w.gate.Store(gateUnlocked)
}

func (w *worker) isLocked() bool {
	return w.gate.Load() != gateUnlocked
}

func (w *worker) interruptIfStarted() {
	if w.gate.Load() >= gateUnlocked && !w.thread.IsInterrupted() {
		w.thread.Interrupt()
	}
}

// runWorker takes tasks until getTask returns nil or a task panics.
func (p *Pool) runWorker(w *worker) {
	t := w.thread
	task := w.firstTask
	w.firstTask = nil
	w.unlock()

	completedAbruptly := true
	defer func() {
		p.processWorkerExit(w, completedAbruptly)
	}()

	for {
		if task == nil {
			if task = p.getTask(t); task == nil {
				break
			}
		}

		w.lock()
		// a stopping pool leaves the thread interrupted, otherwise clear any stale interrupt
		if (runStateAtLeast(p.ctl.Load(), stop) ||
			(t.ClearInterrupt() && runStateAtLeast(p.ctl.Load(), stop))) &&
			!t.IsInterrupted() {
			t.Interrupt()
		}

		err := p.runTask(t, task)
		task = nil
		w.completedTasks.Add(1)
		w.unlock()

		if err != nil {
			p.logger().Errorw("worker terminated abruptly", "thread", t.Name(), "error", err)
			return
		}
	}
	completedAbruptly = false
}

// runTask runs r between the hooks. It returns the first panic raised by the
// hooks or by r.
func (p *Pool) runTask(t *thread.Thread, r Runnable) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.NewPanicError(rec, debug.Stack())
		}
	}()

	p.hooks.beforeExecute(t, r)
	var thrown error
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				thrown = errors.NewPanicError(rec, debug.Stack())
			}
			p.hooks.afterExecute(t, r, thrown)
		}()
		r.Run(t.Context())
	}()
	return thrown
}

// getTask blocks for the next task. It returns nil, after decrementing the
// worker count, when this worker must exit.
func (p *Pool) getTask(t *thread.Thread) Runnable {
	timedOut := false
	for {
		c := p.ctl.Load()
		rs := runStateOf(c)

		if rs >= shutdown && (rs >= stop || p.queue.IsEmpty()) {
			p.decrementWorkerCount()
			return nil
		}

		wc := workerCountOf(c)
		timed := p.allowCoreThreadTimeOut.Load() || wc > p.corePoolSize.Load()

		// never retire the last worker while tasks are queued
		if (wc > p.maximumPoolSize.Load() || (timed && timedOut)) &&
			(wc > 1 || p.queue.IsEmpty()) {
			if p.ctl.CompareAndSwap(c, c-1) {
				return nil
			}
			continue
		}

		var (
			r   Runnable
			ok  bool
			err error
		)
		if timed {
			r, ok, err = p.queue.PollTimeout(t.Context(), p.KeepAliveTime())
		} else {
			r, err = p.queue.Take(t.Context())
			ok = err == nil
		}
		if err != nil {
			t.ClearInterrupt()
			timedOut = false
			continue
		}
		if ok {
			return r
		}
		timedOut = true
	}
}

func (p *Pool) processWorkerExit(w *worker, completedAbruptly bool) {
	if completedAbruptly {
		p.decrementWorkerCount()
	}
	p.runWorkerExitedHook(w.thread)

	p.mainLock.Lock()
	p.completedTaskCount += w.completedTasks.Load()
	delete(p.workers, w)
	p.mainLock.Unlock()

	p.tryTerminate()

	c := p.ctl.Load()
	if runStateLessThan(c, stop) {
		if !completedAbruptly {
			var minWorkers int32
			if !p.allowCoreThreadTimeOut.Load() {
				minWorkers = p.corePoolSize.Load()
			}
			if minWorkers == 0 && !p.queue.IsEmpty() {
				minWorkers = 1
			}
			if workerCountOf(c) >= minWorkers {
				return
			}
		}
		p.addWorker(nil, false)
	}
}

func (p *Pool) runWorkerExitedHook(t *thread.Thread) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger().Errorw("worker exited hook panicked", "thread", t.Name(), "panic", rec)
		}
	}()
	p.hooks.workerExited(t)
}
