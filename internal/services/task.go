package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tupyy/taskpool/internal/models"
	"github.com/tupyy/taskpool/pkg/future"
)

// SyntheticTask returns a callable that sleeps for d and then yields n. When
// failEvery is positive, task n fails if n+1 is a multiple of it. The sleep
// ends early with the context error when the worker is interrupted.
func SyntheticTask(n int, d time.Duration, failEvery int) future.Callable[int] {
	return func(ctx context.Context) (int, error) {
		if d > 0 {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-timer.C:
			}
		}
		if failEvery > 0 && (n+1)%failEvery == 0 {
			return 0, fmt.Errorf("synthetic task %d failed", n)
		}
		return n, nil
	}
}

// SyntheticBatch builds the tasks described by req.
func SyntheticBatch(req models.LoadRequest) []future.Callable[int] {
	callables := make([]future.Callable[int], req.Count)
	for i := range callables {
		callables[i] = SyntheticTask(i, req.Duration, req.FailEvery)
	}
	return callables
}
