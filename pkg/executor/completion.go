package executor

import (
	"context"
	"time"

	"github.com/tupyy/taskpool/pkg/future"
	"github.com/tupyy/taskpool/pkg/queue"
)

// CompletionService runs callables on an Executor and hands out their tasks
// in the order they complete.
type CompletionService[T any] struct {
	executor  Executor
	completed *queue.FIFO[*future.Task[T]]
}

func NewCompletionService[T any](e Executor) *CompletionService[T] {
	return &CompletionService[T]{
		executor:  e,
		completed: queue.NewUnbounded[*future.Task[T]](),
	}
}

func (cs *CompletionService[T]) Submit(c future.Callable[T]) (*future.Task[T], error) {
	t := future.NewWithDone(c, func(t *future.Task[T]) {
		cs.completed.Offer(t)
	})
	if err := cs.executor.Execute(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Poll returns the next completed task without waiting.
func (cs *CompletionService[T]) Poll() (*future.Task[T], bool) {
	return cs.completed.Poll()
}

func (cs *CompletionService[T]) PollTimeout(ctx context.Context, timeout time.Duration) (*future.Task[T], bool, error) {
	return cs.completed.PollTimeout(ctx, timeout)
}

func (cs *CompletionService[T]) Take(ctx context.Context) (*future.Task[T], error) {
	return cs.completed.Take(ctx)
}
