// Package tracing records one opentelemetry span per task run by a pool.
package tracing

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/zapr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tupyy/taskpool/pkg/executor"
	"github.com/tupyy/taskpool/pkg/future"
	"github.com/tupyy/taskpool/pkg/thread"
)

const instrumentationName = "github.com/tupyy/taskpool"

type stateful interface {
	State() future.State
}

// TaskTracer opens a span in BeforeExecute and ends it in AfterExecute on the
// same worker thread.
type TaskTracer struct {
	tracer trace.Tracer
	spans  sync.Map // *thread.Thread -> trace.Span
}

func NewTaskTracer(tp trace.TracerProvider) *TaskTracer {
	return &TaskTracer{tracer: tp.Tracer(instrumentationName)}
}

func (tt *TaskTracer) Hooks() executor.Hooks {
	return executor.Hooks{
		BeforeExecute: func(t *thread.Thread, r executor.Runnable) {
			_, span := tt.tracer.Start(context.Background(), "task.run",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.String("thread.name", t.Name()),
					attribute.String("task.type", fmt.Sprintf("%T", r)),
				))
			tt.spans.Store(t, span)
		},
		AfterExecute: func(t *thread.Thread, r executor.Runnable, err error) {
			v, ok := tt.spans.LoadAndDelete(t)
			if !ok {
				return
			}
			span := v.(trace.Span)
			defer span.End()

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "task panicked")
				return
			}
			if s, ok := r.(stateful); ok {
				state := s.State()
				span.SetAttributes(attribute.String("task.state", state.String()))
				if state == future.Exceptional {
					span.SetStatus(codes.Error, "task completed exceptionally")
					return
				}
			}
			span.SetStatus(codes.Ok, "")
		},
		// a span still open here lost its AfterExecute to a panicking hook
		WorkerExited: func(t *thread.Thread) {
			if v, ok := tt.spans.LoadAndDelete(t); ok {
				span := v.(trace.Span)
				span.SetStatus(codes.Error, "worker exited before the task completed")
				span.End()
			}
		},
	}
}

// NewStdoutProvider builds a provider exporting spans to stdout and installs
// it as the otel global. otel's internal logging goes to the zap global.
// The returned function flushes and stops the exporter.
func NewStdoutProvider() (*sdktrace.TracerProvider, func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))

	otel.SetLogger(zapr.NewLogger(zap.L().Named("otel")))
	otel.SetTracerProvider(tp)

	return tp, tp.Shutdown, nil
}
