package tracing_test

import (
	"context"
	stderrors "errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/tupyy/taskpool/internal/tracing"
	"github.com/tupyy/taskpool/pkg/executor"
	"github.com/tupyy/taskpool/pkg/queue"
	"github.com/tupyy/taskpool/pkg/thread"
)

func attr(s tracetest.SpanStub, key attribute.Key) string {
	for _, kv := range s.Attributes {
		if kv.Key == key {
			return kv.Value.AsString()
		}
	}
	return ""
}

var _ = Describe("TaskTracer", func() {
	var (
		exporter *tracetest.InMemoryExporter
		tp       *sdktrace.TracerProvider
		p        *executor.Pool
	)

	BeforeEach(func() {
		exporter = tracetest.NewInMemoryExporter()
		tp = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		DeferCleanup(tp.Shutdown, context.Background())

		var err error
		p, err = executor.New(1, 1, time.Minute, queue.NewUnbounded[executor.Runnable](),
			executor.WithThreadFactory(thread.NamedFactory("traced")),
			executor.WithHooks(tracing.NewTaskTracer(tp).Hooks()))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		p.ShutdownNow()
		Eventually(p.IsTerminated).Should(BeTrue())
	})

	It("should end one span per task with the outcome", func() {
		// Given a successful and a failing future
		ok, err := executor.Submit(p, func(context.Context) (string, error) { return "ok", nil })
		Expect(err).NotTo(HaveOccurred())
		bad, err := executor.Submit(p, func(context.Context) (string, error) { return "", stderrors.New("boom") })
		Expect(err).NotTo(HaveOccurred())

		// When both complete
		_, _ = ok.Get(context.Background())
		_, _ = bad.Get(context.Background())

		// Then
		Eventually(func() int { return len(exporter.GetSpans()) }).Should(Equal(2))
		spans := exporter.GetSpans()
		Expect(spans[0].Name).To(Equal("task.run"))
		Expect(attr(spans[0], "thread.name")).To(Equal("traced-1"))
		Expect(attr(spans[0], "task.state")).To(Equal("Normal"))
		Expect(spans[0].Status.Code).To(Equal(codes.Ok))
		Expect(attr(spans[1], "task.state")).To(Equal("Exceptional"))
		Expect(spans[1].Status.Code).To(Equal(codes.Error))
	})

	It("should record a panic as an error event", func() {
		Expect(p.Execute(executor.NewRunnable(func(context.Context) { panic("boom") }))).To(Succeed())

		Eventually(func() int { return len(exporter.GetSpans()) }).Should(Equal(1))
		span := exporter.GetSpans()[0]
		Expect(span.Status.Code).To(Equal(codes.Error))
		Expect(span.Events).NotTo(BeEmpty())
		Expect(span.Events[0].Name).To(Equal("exception"))
	})

	It("should end the span of a worker killed by a later hook", func() {
		// Given a pool whose second BeforeExecute hook panics
		chained, err := executor.New(1, 1, time.Minute, queue.NewUnbounded[executor.Runnable](),
			executor.WithThreadFactory(thread.NamedFactory("chained")),
			executor.WithHooks(executor.ChainHooks(
				tracing.NewTaskTracer(tp).Hooks(),
				executor.Hooks{BeforeExecute: func(*thread.Thread, executor.Runnable) { panic("hook") }},
			)))
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			chained.ShutdownNow()
			Eventually(chained.IsTerminated).Should(BeTrue())
		})

		// When
		Expect(chained.Execute(executor.NewRunnable(func(context.Context) {}))).To(Succeed())

		// Then the open span is ended when the worker leaves
		Eventually(func() int { return len(exporter.GetSpans()) }).Should(BeNumerically(">=", 1))
		span := exporter.GetSpans()[0]
		Expect(attr(span, "thread.name")).To(Equal("chained-1"))
		Expect(span.Status.Code).To(Equal(codes.Error))
		Expect(span.Status.Description).To(Equal("worker exited before the task completed"))
	})
})
