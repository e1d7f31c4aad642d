package services_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/taskpool/internal/models"
	"github.com/tupyy/taskpool/internal/services"
	"github.com/tupyy/taskpool/pkg/errors"
	"github.com/tupyy/taskpool/pkg/executor"
	"github.com/tupyy/taskpool/pkg/queue"
)

var _ = Describe("SyntheticTask", func() {
	It("should fail every n-th task", func() {
		ctx := context.Background()

		v, err := services.SyntheticTask(0, 0, 2)(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(0))

		_, err = services.SyntheticTask(1, 0, 2)(ctx)
		Expect(err).To(HaveOccurred())
	})

	It("should stop sleeping when interrupted", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := services.SyntheticTask(0, time.Hour, 0)(ctx)

		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("LoadService", func() {
	var (
		p   *executor.Pool
		srv *services.LoadService
	)

	AfterEach(func() {
		p.ShutdownNow()
		Eventually(p.IsTerminated).Should(BeTrue())
	})

	Context("with an unbounded queue", func() {
		BeforeEach(func() {
			var err error
			p, err = executor.New(2, 2, time.Minute, queue.NewUnbounded[executor.Runnable]())
			Expect(err).NotTo(HaveOccurred())
			srv = services.NewLoadService(p)
		})

		It("should accept a batch and track its outcome", func() {
			// Given
			req := models.LoadRequest{Count: 6, Duration: 5 * time.Millisecond, FailEvery: 3}

			// When
			res, err := srv.Submit(context.Background(), req)

			// Then
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Accepted).To(Equal(6))
			Expect(res.Rejected).To(BeZero())
			Eventually(func() bool {
				st, _ := srv.Batch(res.Batch)
				return st.Done()
			}).Should(BeTrue())
			st, ok := srv.Batch(res.Batch)
			Expect(ok).To(BeTrue())
			Expect(st.Succeeded).To(Equal(4))
			Expect(st.Failed).To(Equal(2))
		})

		It("should not know an unknown batch", func() {
			_, ok := srv.Batch(uuid.New())
			Expect(ok).To(BeFalse())
		})

		It("should refuse work once the pool is shut down", func() {
			p.Shutdown()

			_, err := srv.Submit(context.Background(), models.LoadRequest{Count: 1})

			Expect(errors.IsIllegalStateError(err)).To(BeTrue())
		})
	})

	Context("with a saturated pool", func() {
		BeforeEach(func() {
			var err error
			p, err = executor.New(1, 1, time.Minute, queue.NewFIFO[executor.Runnable](1))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should count tasks rejected without resubmission", func() {
			srv = services.NewLoadService(p, services.WithResubmitTimeout(0))

			res, err := srv.Submit(context.Background(), models.LoadRequest{Count: 4, Duration: 200 * time.Millisecond})

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Accepted).To(Equal(2))
			Expect(res.Rejected).To(Equal(2))
		})

		It("should bound resubmission of a whole batch by one deadline", func() {
			srv = services.NewLoadService(p, services.WithResubmitTimeout(200*time.Millisecond))
			start := time.Now()

			res, err := srv.Submit(context.Background(), models.LoadRequest{Count: 50, Duration: time.Hour})

			Expect(err).NotTo(HaveOccurred())
			Expect(time.Since(start)).To(BeNumerically("<", 2*time.Second))
			Expect(res.Accepted).To(Equal(2))
			Expect(res.Rejected).To(Equal(48))
		})

		It("should resubmit rejected tasks until the pool has room", func() {
			srv = services.NewLoadService(p, services.WithResubmitTimeout(5*time.Second))

			res, err := srv.Submit(context.Background(), models.LoadRequest{Count: 4, Duration: 20 * time.Millisecond})

			Expect(err).NotTo(HaveOccurred())
			Expect(res.Accepted).To(Equal(4))
			Expect(res.Rejected).To(BeZero())
		})
	})
})
