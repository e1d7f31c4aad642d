package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tupyy/taskpool/internal/config"
	"github.com/tupyy/taskpool/internal/models"
	"github.com/tupyy/taskpool/internal/services"
	"github.com/tupyy/taskpool/pkg/executor"
	"github.com/tupyy/taskpool/pkg/future"
)

type runOptions struct {
	tasks     int
	duration  time.Duration
	failEvery int
	timeout   time.Duration
}

type runSummary struct {
	Succeeded       int
	Failed          int
	Cancelled       int
	Rejected        uint64
	LargestPoolSize int
	Completed       uint64
	Elapsed         time.Duration
}

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a batch of synthetic tasks and print a summary",
		Long: `Run submits --tasks synthetic tasks with InvokeAll and waits for them.
Each task sleeps for --duration; every --fail-every-th task fails.

With the discard policies a rejected task never completes, so set --timeout
to bound the wait.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.tasks <= 0 {
				return fmt.Errorf("--tasks must be positive, got %d", opts.tasks)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := runBatch(ctx, cfg.Pool, opts)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.tasks, "tasks", 100, "Number of tasks")
	cmd.Flags().DurationVar(&opts.duration, "duration", 50*time.Millisecond, "How long each task sleeps")
	cmd.Flags().IntVar(&opts.failEvery, "fail-every", 0, "Fail every n-th task, 0 never fails")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Cancel tasks still unfinished after this long, 0 waits forever")

	return cmd
}

func runBatch(ctx context.Context, cfg config.Pool, opts runOptions) (runSummary, error) {
	pool, err := newPool(cfg)
	if err != nil {
		return runSummary{}, err
	}
	defer pool.ShutdownNow()

	callables := services.SyntheticBatch(models.LoadRequest{
		Count:     opts.tasks,
		Duration:  opts.duration,
		FailEvery: opts.failEvery,
	})

	start := time.Now()
	var tasks []*future.Task[int]
	if opts.timeout > 0 {
		tasks, err = executor.InvokeAllTimeout(ctx, pool, callables, opts.timeout)
	} else {
		tasks, err = executor.InvokeAll(ctx, pool, callables)
	}
	if err != nil {
		return runSummary{}, fmt.Errorf("batch aborted: %w", err)
	}

	pool.Shutdown()
	if _, err := pool.AwaitTermination(ctx, gracePeriod); err != nil {
		return runSummary{}, err
	}

	summary := runSummary{
		Rejected:        pool.RejectedTaskCount(),
		LargestPoolSize: pool.LargestPoolSize(),
		Completed:       pool.CompletedTaskCount(),
		Elapsed:         time.Since(start),
	}
	for _, t := range tasks {
		switch t.State() {
		case future.Normal:
			summary.Succeeded++
		case future.Exceptional:
			summary.Failed++
		default:
			summary.Cancelled++
		}
	}
	return summary, nil
}

func printSummary(w io.Writer, s runSummary) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	_, _ = bold.Fprintf(w, "Batch finished in %s\n", s.Elapsed.Round(time.Millisecond))
	_, _ = green.Fprintf(w, "  succeeded:  %d\n", s.Succeeded)
	_, _ = red.Fprintf(w, "  failed:     %d\n", s.Failed)
	_, _ = yellow.Fprintf(w, "  cancelled:  %d\n", s.Cancelled)
	_, _ = yellow.Fprintf(w, "  rejected:   %d\n", s.Rejected)
	_, _ = fmt.Fprintf(w, "  largest pool size: %d\n", s.LargestPoolSize)
	_, _ = fmt.Fprintf(w, "  completed tasks:   %d\n", s.Completed)
}
