package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"

	"github.com/tupyy/taskpool/pkg/executor"
	"github.com/tupyy/taskpool/pkg/queue"
)

const (
	QueueFIFO        = "fifo"
	QueueSynchronous = "synchronous"

	PolicyAbort         = "abort"
	PolicyCallerRuns    = "caller-runs"
	PolicyDiscard       = "discard"
	PolicyDiscardOldest = "discard-oldest"
	PolicyRetry         = "retry"
)

type Configuration struct {
	Server    Server    `yaml:"server"`
	Pool      Pool      `yaml:"pool"`
	Telemetry Telemetry `yaml:"telemetry"`
	LogFormat string    `yaml:"logFormat" default:"console"`
	LogLevel  string    `yaml:"logLevel" default:"info"`
}

type Server struct {
	ServerMode string `yaml:"serverMode" default:"dev"`
	HTTPPort   int    `yaml:"httpPort" default:"8000"`
}

type Pool struct {
	CorePoolSize           int           `yaml:"corePoolSize" default:"4"`
	MaximumPoolSize        int           `yaml:"maximumPoolSize" default:"8"`
	KeepAlive              time.Duration `yaml:"-" default:"60s"`
	AllowCoreThreadTimeOut bool          `yaml:"allowCoreThreadTimeOut"`
	QueueKind              string        `yaml:"queueKind" default:"fifo"`
	QueueCapacity          int           `yaml:"queueCapacity" default:"1024"`
	RejectionPolicy        string        `yaml:"rejectionPolicy" default:"abort"`
	RetryMaxElapsed        time.Duration `yaml:"-" default:"5s"`
	ThreadNamePrefix       string        `yaml:"threadNamePrefix" default:"taskpool"`
	Prestart               bool          `yaml:"prestart"`
}

// MarshalYAML writes durations in their string form so a dump can be read back as a config file.
func (p Pool) MarshalYAML() (any, error) {
	type plain Pool
	return struct {
		plain           `yaml:",inline"`
		KeepAlive       string `yaml:"keepAlive"`
		RetryMaxElapsed string `yaml:"retryMaxElapsed"`
	}{plain(p), p.KeepAlive.String(), p.RetryMaxElapsed.String()}, nil
}

type Telemetry struct {
	Metrics bool `yaml:"metrics" default:"true"`
	Tracing bool `yaml:"tracing"`
}

func NewConfigurationWithDefaults() (*Configuration, error) {
	c := &Configuration{}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("failed to set configuration defaults: %w", err)
	}
	return c, nil
}

func (c *Configuration) Validate() error {
	if c.Server.ServerMode != "dev" && c.Server.ServerMode != "prod" {
		return fmt.Errorf("invalid server mode %q: must be 'dev' or 'prod'", c.Server.ServerMode)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.Server.HTTPPort)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be 'console' or 'json'", c.LogFormat)
	}
	return c.Pool.Validate()
}

func (p Pool) Validate() error {
	switch {
	case p.CorePoolSize < 0:
		return fmt.Errorf("core pool size must not be negative, got %d", p.CorePoolSize)
	case p.MaximumPoolSize <= 0:
		return fmt.Errorf("maximum pool size must be positive, got %d", p.MaximumPoolSize)
	case p.MaximumPoolSize < p.CorePoolSize:
		return fmt.Errorf("maximum pool size %d is below core pool size %d", p.MaximumPoolSize, p.CorePoolSize)
	case p.KeepAlive < 0:
		return fmt.Errorf("keep alive must not be negative, got %s", p.KeepAlive)
	case p.AllowCoreThreadTimeOut && p.KeepAlive == 0:
		return fmt.Errorf("core thread time-out requires a positive keep alive")
	case p.QueueCapacity < 0:
		return fmt.Errorf("queue capacity must not be negative, got %d", p.QueueCapacity)
	}
	switch strings.ToLower(p.QueueKind) {
	case QueueFIFO, QueueSynchronous:
	default:
		return fmt.Errorf("invalid queue kind %q: must be %q or %q", p.QueueKind, QueueFIFO, QueueSynchronous)
	}
	if _, err := p.RejectedExecutionHandler(); err != nil {
		return err
	}
	if strings.ToLower(p.QueueKind) == QueueSynchronous && strings.ToLower(p.RejectionPolicy) == PolicyDiscardOldest {
		return fmt.Errorf("rejection policy %q needs a queue that holds tasks, not %q", PolicyDiscardOldest, QueueSynchronous)
	}
	return nil
}

// NewQueue builds the task queue. A FIFO queue with zero capacity is unbounded.
func (p Pool) NewQueue() queue.BlockingQueue[executor.Runnable] {
	if strings.ToLower(p.QueueKind) == QueueSynchronous {
		return queue.NewSynchronous[executor.Runnable]()
	}
	return queue.NewFIFO[executor.Runnable](p.QueueCapacity)
}

func (p Pool) RejectedExecutionHandler() (executor.RejectedExecutionHandler, error) {
	switch strings.ToLower(p.RejectionPolicy) {
	case PolicyAbort:
		return executor.AbortPolicy{}, nil
	case PolicyCallerRuns:
		return executor.CallerRunsPolicy{}, nil
	case PolicyDiscard:
		return executor.DiscardPolicy{}, nil
	case PolicyDiscardOldest:
		return executor.DiscardOldestPolicy{}, nil
	case PolicyRetry:
		return executor.RetryPolicy{MaxElapsedTime: p.RetryMaxElapsed}, nil
	default:
		return nil, fmt.Errorf("unknown rejection policy %q", p.RejectionPolicy)
	}
}
