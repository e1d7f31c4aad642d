package logging_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tupyy/taskpool/internal/logging"
)

var _ = Describe("Logger", func() {
	DescribeTable("should honour the level",
		func(format, level string, enabled, disabled zapcore.Level) {
			logger, err := logging.New(format, level)
			Expect(err).NotTo(HaveOccurred())

			Expect(logger.Core().Enabled(enabled)).To(BeTrue())
			Expect(logger.Core().Enabled(disabled)).To(BeFalse())
		},
		Entry("console debug", "console", "debug", zapcore.DebugLevel, zapcore.DebugLevel-1),
		Entry("console info", "console", "info", zapcore.InfoLevel, zapcore.DebugLevel),
		Entry("json warn", "json", "warn", zapcore.WarnLevel, zapcore.InfoLevel),
	)

	It("should reject an unknown level", func() {
		_, err := logging.New("console", "loud")
		Expect(err).To(HaveOccurred())
	})

	It("should reject an unknown format", func() {
		_, err := logging.New("xml", "info")
		Expect(err).To(HaveOccurred())
	})

	It("should install and restore the global logger", func() {
		before := zap.L()

		restore, err := logging.Setup("json", "error")
		Expect(err).NotTo(HaveOccurred())
		Expect(zap.L()).NotTo(BeIdenticalTo(before))
		Expect(zap.L().Core().Enabled(zapcore.WarnLevel)).To(BeFalse())

		restore()
		Expect(zap.L()).To(BeIdenticalTo(before))
	})
})
