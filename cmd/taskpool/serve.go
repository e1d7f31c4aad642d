package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/tupyy/taskpool/api/v1"
	"github.com/tupyy/taskpool/internal/config"
	"github.com/tupyy/taskpool/internal/handlers"
	"github.com/tupyy/taskpool/internal/metrics"
	"github.com/tupyy/taskpool/internal/server"
	"github.com/tupyy/taskpool/internal/services"
	"github.com/tupyy/taskpool/internal/tracing"
	"github.com/tupyy/taskpool/pkg/executor"
)

const gracePeriod = 30 * time.Second

func NewServeCommand(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the pool behind the admin API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Configuration) error {
	log := zap.S().Named("serve")

	var (
		hooks      []executor.Hooks
		serverOpts []server.Option
		registry   = prometheus.NewRegistry()
	)

	if cfg.Telemetry.Metrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		tm, err := metrics.NewTaskMetrics(registry)
		if err != nil {
			return err
		}
		hooks = append(hooks, tm.Hooks())
		serverOpts = append(serverOpts, server.WithMetrics(registry))
	}

	if cfg.Telemetry.Tracing {
		tp, shutdownTracing, err := tracing.NewStdoutProvider()
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				log.Warnw("failed to flush traces", "error", err)
			}
		}()
		hooks = append(hooks, tracing.NewTaskTracer(tp).Hooks())
	}

	pool, err := newPool(cfg.Pool, hooks...)
	if err != nil {
		return err
	}
	if cfg.Telemetry.Metrics {
		registry.MustRegister(metrics.NewCollector(pool))
	}

	h := handlers.New(
		services.NewPoolService(pool),
		services.NewLoadService(pool, services.WithResubmitTimeout(cfg.Pool.RetryMaxElapsed)),
	)
	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, h)
	}, serverOpts...)
	if err != nil {
		pool.ShutdownNow()
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err = <-errCh:
		if err != nil {
			log.Errorw("http server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracePeriod)
	defer cancel()

	if stopErr := srv.Stop(shutdownCtx); stopErr != nil {
		log.Warnw("failed to stop http server", "error", stopErr)
	}

	pool.Shutdown()
	terminated, awaitErr := pool.AwaitTermination(shutdownCtx, gracePeriod)
	if awaitErr != nil || !terminated {
		dropped := pool.ShutdownNow()
		log.Warnw("pool did not terminate in time, interrupting workers", "dropped", len(dropped))
	}

	return err
}
