// Package config defines the configuration structure for taskpool.
//
// Configuration is organized into logical sections (Server, Pool, Telemetry).
// Defaults come from `default` struct tags applied with creasty/defaults; the
// CLI then overlays a config file, TASKPOOL_* environment variables and flags
// through viper.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - admin HTTP server settings
//	├── Pool           - executor sizing, queue and rejection policy
//	├── Telemetry      - metrics and tracing switches
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Pool Configuration
//
//	┌────────────────────────┬────────────┬────────────────────────────────────┐
//	│ Field                  │ Default    │ Description                        │
//	├────────────────────────┼────────────┼────────────────────────────────────┤
//	│ CorePoolSize           │ 4          │ Workers kept even when idle        │
//	│ MaximumPoolSize        │ 8          │ Upper bound on workers             │
//	│ KeepAlive              │ 60s        │ Idle time before a worker retires  │
//	│ AllowCoreThreadTimeOut │ false      │ Apply KeepAlive to core workers    │
//	│ QueueKind              │ "fifo"     │ "fifo" or "synchronous"            │
//	│ QueueCapacity          │ 1024       │ FIFO queue bound, 0 = unbounded    │
//	│ RejectionPolicy        │ "abort"    │ abort, caller-runs, discard,       │
//	│                        │            │ discard-oldest, retry              │
//	│ RetryMaxElapsed        │ 5s         │ Give-up bound of the retry policy  │
//	│ ThreadNamePrefix       │ "taskpool" │ Worker thread name prefix          │
//	│ Prestart               │ false      │ Start core workers eagerly         │
//	└────────────────────────┴────────────┴────────────────────────────────────┘
//
// discard-oldest is refused with a synchronous queue, which never holds a
// task to discard.
//
// # Telemetry Configuration
//
//	┌──────────┬─────────┬─────────────────────────────────────────────┐
//	│ Field    │ Default │ Description                                 │
//	├──────────┼─────────┼─────────────────────────────────────────────┤
//	│ Metrics  │ true    │ Register prometheus collectors, /metrics    │
//	│ Tracing  │ false   │ One span per task, exported to stdout       │
//	└──────────┴─────────┴─────────────────────────────────────────────┘
//
// # Usage Example
//
//	cfg, err := config.NewConfigurationWithDefaults()
//	if err != nil {
//	    return err
//	}
//	cfg.Pool.RejectionPolicy = config.PolicyCallerRuns
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
//	handler, _ := cfg.Pool.RejectedExecutionHandler()
//	pool, err := executor.New(cfg.Pool.CorePoolSize, cfg.Pool.MaximumPoolSize,
//	    cfg.Pool.KeepAlive, cfg.Pool.NewQueue(),
//	    executor.WithRejectedExecutionHandler(handler))
package config
