package executor

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/taskpool/pkg/queue"
	"github.com/tupyy/taskpool/pkg/thread"
)

var _ = Describe("Control word", func() {
	It("should pack and unpack phase and count", func() {
		for _, rs := range []int32{running, shutdown, stop, tidying, terminated} {
			c := ctlOf(rs, 17)

			Expect(runStateOf(c)).To(Equal(rs))
			Expect(workerCountOf(c)).To(Equal(int32(17)))
		}
	})

	It("should order phases", func() {
		Expect(running).To(BeNumerically("<", shutdown))
		Expect(shutdown).To(BeNumerically("<", stop))
		Expect(stop).To(BeNumerically("<", tidying))
		Expect(tidying).To(BeNumerically("<", terminated))
		Expect(isRunning(ctlOf(running, capacity))).To(BeTrue())
		Expect(isRunning(ctlOf(shutdown, 0))).To(BeFalse())
	})

	It("should keep the phase when the count is incremented up to capacity", func() {
		c := ctlOf(running, capacity-1) + 1

		Expect(runStateOf(c)).To(Equal(running))
		Expect(workerCountOf(c)).To(Equal(int32(capacity)))
	})

	It("should name phases", func() {
		Expect(PhaseRunning.String()).To(Equal("Running"))
		Expect(PhaseTerminated.String()).To(Equal("Terminated"))
		Expect(Phase(42).String()).To(Equal("Unknown"))
	})

	It("should number phases in order", func() {
		Expect(PhaseRunning.Ordinal()).To(Equal(-1))
		Expect(PhaseShutdown.Ordinal()).To(Equal(0))
		Expect(PhaseStop.Ordinal()).To(Equal(1))
		Expect(PhaseTidying.Ordinal()).To(Equal(2))
		Expect(PhaseTerminated.Ordinal()).To(Equal(3))
	})
})

var _ = Describe("getTask", func() {
	var p *Pool

	BeforeEach(func() {
		var err error
		p, err = New(0, 1, 10*time.Millisecond, queue.NewUnbounded[Runnable]())
		Expect(err).NotTo(HaveOccurred())
	})

	It("should not retire the last worker while tasks are queued", func() {
		// Given a single worker and a queued task
		r := NewRunnable(func(context.Context) {})
		p.queue.Offer(r)
		p.ctl.Store(ctlOf(running, 1))

		// When
		got := p.getTask(thread.New("t", nil))

		// Then
		Expect(got).NotTo(BeNil())
		Expect(workerCountOf(p.ctl.Load())).To(Equal(int32(1)))
	})

	It("should retire an idle worker after the keep-alive time", func() {
		p.ctl.Store(ctlOf(running, 1))

		start := time.Now()
		got := p.getTask(thread.New("t", nil))

		Expect(got).To(BeNil())
		Expect(time.Since(start)).To(BeNumerically(">=", 10*time.Millisecond))
		Expect(workerCountOf(p.ctl.Load())).To(Equal(int32(0)))
	})

	It("should return at once when the pool is stopping", func() {
		p.queue.Offer(NewRunnable(func(context.Context) {}))
		p.ctl.Store(ctlOf(stop, 1))

		Expect(p.getTask(thread.New("t", nil))).To(BeNil())
		Expect(workerCountOf(p.ctl.Load())).To(Equal(int32(0)))
	})

	It("should keep draining the queue after shutdown", func() {
		p.queue.Offer(NewRunnable(func(context.Context) {}))
		p.ctl.Store(ctlOf(shutdown, 1))

		Expect(p.getTask(thread.New("t", nil))).NotTo(BeNil())
		Expect(p.getTask(thread.New("t", nil))).To(BeNil())
	})

	It("should clear an interrupt and keep waiting", func() {
		Expect(p.SetKeepAliveTime(5 * time.Second)).To(Succeed())
		p.ctl.Store(ctlOf(running, 1))
		t := thread.New("t", nil)
		t.Interrupt()
		go func() {
			time.Sleep(5 * time.Millisecond)
			p.queue.Offer(NewRunnable(func(context.Context) {}))
		}()

		Expect(p.getTask(t)).NotTo(BeNil())
		Expect(t.IsInterrupted()).To(BeFalse())
	})
})

var _ = Describe("Worker gate", func() {
	It("should refuse the lock until the run loop starts", func() {
		w := &worker{thread: thread.New("t", nil)}
		w.gate.Store(gateUninitialized)

		Expect(w.tryLock()).To(BeFalse())
		Expect(w.isLocked()).To(BeTrue())
		w.interruptIfStarted()
		Expect(w.thread.IsInterrupted()).To(BeFalse())

		w.unlock()
		Expect(w.tryLock()).To(BeTrue())
		Expect(w.tryLock()).To(BeFalse())
		w.unlock()
		Expect(w.isLocked()).To(BeFalse())
	})
})
