package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/taskpool/pkg/errors"
)

var _ = Describe("Errors", func() {
	Context("predicates", func() {
		It("should match through a wrap chain", func() {
			err := fmt.Errorf("submit: %w", errors.NewRejectedExecutionError("pool is shut down"))

			Expect(errors.IsRejectedExecutionError(err)).To(BeTrue())
			Expect(errors.IsCancellationError(err)).To(BeFalse())
		})

		It("should not confuse cancellation with timeout", func() {
			Expect(errors.IsCancellationError(errors.NewCancellationError())).To(BeTrue())
			Expect(errors.IsTimeoutError(errors.NewCancellationError())).To(BeFalse())
			Expect(errors.IsTimeoutError(errors.NewTimeoutError(time.Second))).To(BeTrue())
		})
	})

	Context("ExecutionError", func() {
		It("should unwrap to the original cause", func() {
			cause := stderrors.New("boom")
			err := errors.NewExecutionError(cause)

			Expect(stderrors.Is(err, cause)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("boom"))
		})
	})

	Context("InterruptedError", func() {
		It("should unwrap to the context error", func() {
			err := errors.NewInterruptedError(context.Canceled)

			Expect(stderrors.Is(err, context.Canceled)).To(BeTrue())
			Expect(errors.IsInterruptedError(err)).To(BeTrue())
		})
	})

	Context("PanicError", func() {
		It("should unwrap a panic value that is an error", func() {
			cause := stderrors.New("nil map")
			err := errors.NewPanicError(cause, nil)

			Expect(stderrors.Is(err, cause)).To(BeTrue())
		})

		It("should format a non-error panic value", func() {
			err := errors.NewPanicError("oops", []byte("stack"))

			Expect(err.Error()).To(Equal("panic: oops"))
			Expect(stderrors.Unwrap(err)).To(BeNil())
		})
	})

	Context("RejectedExecutionError", func() {
		It("should carry an optional cause", func() {
			cause := stderrors.New("deadline")
			err := errors.NewRejectedExecutionErrorWithCause("retry exhausted", cause)

			Expect(stderrors.Is(err, cause)).To(BeTrue())
			Expect(err.Error()).To(Equal("rejected execution: retry exhausted: deadline"))
		})
	})
})
