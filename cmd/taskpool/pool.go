package main

import (
	"go.uber.org/zap"

	"github.com/tupyy/taskpool/internal/config"
	"github.com/tupyy/taskpool/pkg/executor"
	"github.com/tupyy/taskpool/pkg/thread"
)

func newPool(cfg config.Pool, hooks ...executor.Hooks) (*executor.Pool, error) {
	handler, err := cfg.RejectedExecutionHandler()
	if err != nil {
		return nil, err
	}

	hooks = append(hooks, executor.Hooks{
		Terminated: func() {
			zap.S().Named("pool").Info("pool terminated")
		},
	})

	pool, err := executor.New(
		cfg.CorePoolSize,
		cfg.MaximumPoolSize,
		cfg.KeepAlive,
		cfg.NewQueue(),
		executor.WithThreadFactory(thread.NamedFactory(cfg.ThreadNamePrefix)),
		executor.WithRejectedExecutionHandler(handler),
		executor.WithCoreThreadTimeOut(cfg.AllowCoreThreadTimeOut),
		executor.WithHooks(executor.ChainHooks(hooks...)),
	)
	if err != nil {
		return nil, err
	}

	if cfg.Prestart {
		n := pool.PrestartAllCoreThreads()
		zap.S().Named("pool").Debugw("core threads prestarted", "count", n)
	}

	zap.S().Named("pool").Infow("pool created", "pool", pool.String(), "queue", cfg.QueueKind, "policy", cfg.RejectionPolicy)
	return pool, nil
}
