package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tupyy/taskpool/internal/config"
	"github.com/tupyy/taskpool/internal/logging"
)

const envPrefix = "TASKPOOL"

// flagBinding maps a command line flag to its configuration key.
type flagBinding struct {
	key  string
	flag string
}

var bindings = []flagBinding{
	{"logFormat", "log-format"},
	{"logLevel", "log-level"},
	{"server.serverMode", "server-mode"},
	{"server.httpPort", "http-port"},
	{"pool.corePoolSize", "core-pool-size"},
	{"pool.maximumPoolSize", "max-pool-size"},
	{"pool.keepAlive", "keep-alive"},
	{"pool.allowCoreThreadTimeOut", "allow-core-timeout"},
	{"pool.queueKind", "queue"},
	{"pool.queueCapacity", "queue-capacity"},
	{"pool.rejectionPolicy", "rejection-policy"},
	{"pool.retryMaxElapsed", "retry-max-elapsed"},
	{"pool.threadNamePrefix", "thread-prefix"},
	{"pool.prestart", "prestart"},
	{"telemetry.metrics", "metrics"},
	{"telemetry.tracing", "tracing"},
}

func NewRootCommand() *cobra.Command {
	cfg, err := config.NewConfigurationWithDefaults()
	if err != nil {
		panic(err)
	}

	var (
		configFile    string
		restoreLogger func()
	)

	root := &cobra.Command{
		Use:          "taskpool",
		Short:        "Bounded, dynamically sized worker pool with an admin API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfiguration(cmd.Flags(), configFile, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			restore, err := logging.Setup(cfg.LogFormat, cfg.LogLevel)
			if err != nil {
				return err
			}
			restoreLogger = restore
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if restoreLogger != nil {
				restoreLogger()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a YAML configuration file")
	registerFlags(flags, cfg)

	root.AddCommand(
		NewServeCommand(cfg),
		NewRunCommand(cfg),
		NewConfigCommand(cfg),
	)
	return root
}

// registerFlags declares one flag per configuration key, defaulting to the
// current value of cfg.
func registerFlags(flags *pflag.FlagSet, cfg *config.Configuration) {
	flags.String("log-format", cfg.LogFormat, "Log format: console or json")
	flags.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	flags.String("server-mode", cfg.Server.ServerMode, "Server mode: dev or prod")
	flags.Int("http-port", cfg.Server.HTTPPort, "Admin API listen port")

	flags.Int("core-pool-size", cfg.Pool.CorePoolSize, "Workers kept even when idle")
	flags.Int("max-pool-size", cfg.Pool.MaximumPoolSize, "Upper bound on workers")
	flags.Duration("keep-alive", cfg.Pool.KeepAlive, "Idle time before a worker above core size retires")
	flags.Bool("allow-core-timeout", cfg.Pool.AllowCoreThreadTimeOut, "Apply keep-alive to core workers too")
	flags.String("queue", cfg.Pool.QueueKind, "Task queue: fifo or synchronous")
	flags.Int("queue-capacity", cfg.Pool.QueueCapacity, "FIFO queue capacity, 0 for unbounded")
	flags.String("rejection-policy", cfg.Pool.RejectionPolicy, "abort, caller-runs, discard, discard-oldest or retry")
	flags.Duration("retry-max-elapsed", cfg.Pool.RetryMaxElapsed, "How long the retry policy keeps trying")
	flags.String("thread-prefix", cfg.Pool.ThreadNamePrefix, "Worker thread name prefix")
	flags.Bool("prestart", cfg.Pool.Prestart, "Start all core workers at once")

	flags.Bool("metrics", cfg.Telemetry.Metrics, "Expose prometheus metrics on /metrics")
	flags.Bool("tracing", cfg.Telemetry.Tracing, "Export one span per task to stdout")
}

// loadConfiguration layers, from lowest to highest precedence, the defaults,
// the config file, TASKPOOL_* environment variables and explicit flags.
func loadConfiguration(flags *pflag.FlagSet, configFile string, cfg *config.Configuration) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range bindings {
		if err := v.BindPFlag(b.key, flags.Lookup(b.flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", b.flag, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}
