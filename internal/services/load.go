package services

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tupyy/taskpool/internal/models"
	"github.com/tupyy/taskpool/pkg/errors"
	"github.com/tupyy/taskpool/pkg/executor"
	"github.com/tupyy/taskpool/pkg/future"
)

const (
	defaultResubmitTimeout = 2 * time.Second
	maxTrackedBatches      = 64
)

type batch struct {
	id        uuid.UUID
	submitted time.Time
	tasks     []*future.Task[int]
}

// LoadService submits batches of synthetic tasks and keeps the most recent
// batches around so their progress can be queried.
type LoadService struct {
	pool            executor.ExecutorService
	resubmitTimeout time.Duration

	mu      sync.Mutex
	batches map[uuid.UUID]*batch
	order   []uuid.UUID
}

type LoadServiceOption func(*LoadService)

// WithResubmitTimeout bounds how long rejected tasks of one batch are
// re-submitted with back-off. The bound covers the whole batch. Zero disables
// re-submission.
func WithResubmitTimeout(d time.Duration) LoadServiceOption {
	return func(s *LoadService) {
		s.resubmitTimeout = d
	}
}

func NewLoadService(pool executor.ExecutorService, opts ...LoadServiceOption) *LoadService {
	s := &LoadService{
		pool:            pool,
		resubmitTimeout: defaultResubmitTimeout,
		batches:         make(map[uuid.UUID]*batch),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit queues req.Count synthetic tasks. A task the pool rejects is
// re-submitted with exponential back-off until the batch's resubmit deadline
// or ctx expires, then counted as rejected. Once the deadline has passed the
// remaining rejections are counted without retrying. It fails with
// IllegalStateError when the pool is already shut down.
func (s *LoadService) Submit(ctx context.Context, req models.LoadRequest) (models.LoadResult, error) {
	if s.pool.IsShutdown() {
		return models.LoadResult{}, errors.NewIllegalStateError("pool is shut down")
	}

	b := &batch{id: uuid.New(), submitted: time.Now()}
	result := models.LoadResult{Batch: b.id}
	log := zap.S().Named("load_service").With("batch", b.id)

	retryCtx, cancel := context.WithTimeout(ctx, s.resubmitTimeout)
	defer cancel()

	for _, c := range SyntheticBatch(req) {
		t, err := s.submit(retryCtx, c)
		if err != nil {
			result.Rejected++
			log.Debugw("task rejected", "error", err)
			continue
		}
		b.tasks = append(b.tasks, t)
		result.Accepted++
	}

	s.track(b)
	log.Infow("batch submitted", "accepted", result.Accepted, "rejected", result.Rejected)
	return result, nil
}

func (s *LoadService) submit(ctx context.Context, c future.Callable[int]) (*future.Task[int], error) {
	t, err := executor.Submit(s.pool, c)
	if err == nil || s.resubmitTimeout <= 0 || ctx.Err() != nil || !errors.IsRejectedExecutionError(err) {
		return t, err
	}

	return backoff.Retry(ctx, func() (*future.Task[int], error) {
		if s.pool.IsShutdown() {
			return nil, backoff.Permanent(errors.NewRejectedExecutionError("pool is shut down"))
		}
		return executor.Submit(s.pool, c)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()))
}

func (s *LoadService) track(b *batch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches[b.id] = b
	s.order = append(s.order, b.id)
	if len(s.order) > maxTrackedBatches {
		delete(s.batches, s.order[0])
		s.order = s.order[1:]
	}
}

// Batch reports the progress of a tracked batch.
func (s *LoadService) Batch(id uuid.UUID) (models.BatchStatus, bool) {
	s.mu.Lock()
	b, ok := s.batches[id]
	s.mu.Unlock()
	if !ok {
		return models.BatchStatus{}, false
	}

	st := models.BatchStatus{Batch: b.id, Submitted: b.submitted}
	for _, t := range b.tasks {
		switch state := t.State(); {
		case !state.Terminal():
			st.Pending++
		case state == future.Normal:
			st.Succeeded++
		case state == future.Exceptional:
			st.Failed++
		default:
			st.Cancelled++
		}
	}
	return st, true
}
