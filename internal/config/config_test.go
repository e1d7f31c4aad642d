package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/tupyy/taskpool/internal/config"
	"github.com/tupyy/taskpool/pkg/executor"
	"github.com/tupyy/taskpool/pkg/queue"
)

var _ = Describe("Configuration", func() {
	var cfg *config.Configuration

	BeforeEach(func() {
		var err error
		cfg, err = config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())
	})

	Context("defaults", func() {
		It("should fill every section", func() {
			Expect(cfg.Server.ServerMode).To(Equal("dev"))
			Expect(cfg.Server.HTTPPort).To(Equal(8000))
			Expect(cfg.Pool.CorePoolSize).To(Equal(4))
			Expect(cfg.Pool.MaximumPoolSize).To(Equal(8))
			Expect(cfg.Pool.KeepAlive).To(Equal(60 * time.Second))
			Expect(cfg.Pool.QueueKind).To(Equal(config.QueueFIFO))
			Expect(cfg.Pool.RejectionPolicy).To(Equal(config.PolicyAbort))
			Expect(cfg.Telemetry.Metrics).To(BeTrue())
			Expect(cfg.Telemetry.Tracing).To(BeFalse())
			Expect(cfg.LogLevel).To(Equal("info"))
		})

		It("should be valid", func() {
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Context("validation", func() {
		DescribeTable("should reject",
			func(mutate func(c *config.Configuration)) {
				mutate(cfg)
				Expect(cfg.Validate()).NotTo(Succeed())
			},
			Entry("unknown server mode", func(c *config.Configuration) { c.Server.ServerMode = "test" }),
			Entry("port out of range", func(c *config.Configuration) { c.Server.HTTPPort = 70000 }),
			Entry("unknown log format", func(c *config.Configuration) { c.LogFormat = "xml" }),
			Entry("negative core size", func(c *config.Configuration) { c.Pool.CorePoolSize = -1 }),
			Entry("max below core", func(c *config.Configuration) { c.Pool.MaximumPoolSize = 2 }),
			Entry("core time-out without keep alive", func(c *config.Configuration) {
				c.Pool.AllowCoreThreadTimeOut = true
				c.Pool.KeepAlive = 0
			}),
			Entry("unknown queue kind", func(c *config.Configuration) { c.Pool.QueueKind = "priority" }),
			Entry("unknown rejection policy", func(c *config.Configuration) { c.Pool.RejectionPolicy = "drop" }),
			Entry("discard oldest on a synchronous queue", func(c *config.Configuration) {
				c.Pool.QueueKind = config.QueueSynchronous
				c.Pool.RejectionPolicy = config.PolicyDiscardOldest
			}),
		)
	})

	Context("pool construction", func() {
		DescribeTable("should map rejection policies",
			func(name string, expected executor.RejectedExecutionHandler) {
				cfg.Pool.RejectionPolicy = name
				h, err := cfg.Pool.RejectedExecutionHandler()
				Expect(err).NotTo(HaveOccurred())
				Expect(h).To(BeAssignableToTypeOf(expected))
			},
			Entry("abort", config.PolicyAbort, executor.AbortPolicy{}),
			Entry("caller runs", config.PolicyCallerRuns, executor.CallerRunsPolicy{}),
			Entry("discard", config.PolicyDiscard, executor.DiscardPolicy{}),
			Entry("discard oldest", config.PolicyDiscardOldest, executor.DiscardOldestPolicy{}),
			Entry("retry", config.PolicyRetry, executor.RetryPolicy{}),
		)

		It("should build a bounded FIFO queue", func() {
			cfg.Pool.QueueCapacity = 2

			q := cfg.Pool.NewQueue()

			Expect(q).To(BeAssignableToTypeOf(&queue.FIFO[executor.Runnable]{}))
			Expect(q.RemainingCapacity()).To(Equal(2))
		})

		It("should build a synchronous queue", func() {
			cfg.Pool.QueueKind = config.QueueSynchronous

			Expect(cfg.Pool.NewQueue()).To(BeAssignableToTypeOf(&queue.Synchronous[executor.Runnable]{}))
		})
	})

	Context("yaml", func() {
		It("should write durations as strings", func() {
			out, err := yaml.Marshal(cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(string(out)).To(ContainSubstring("keepAlive: 1m0s"))
			Expect(string(out)).To(ContainSubstring("corePoolSize: 4"))
			Expect(string(out)).To(ContainSubstring("httpPort: 8000"))
		})
	})
})
