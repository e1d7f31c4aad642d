package metrics

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tupyy/taskpool/pkg/executor"
	"github.com/tupyy/taskpool/pkg/thread"
)

var _ = Describe("TaskMetrics start times", func() {
	It("should forget the start time of a worker that exits mid-task", func() {
		m, err := NewTaskMetrics(prometheus.NewRegistry())
		Expect(err).NotTo(HaveOccurred())
		hooks := m.Hooks()
		t := thread.New("w", nil)

		hooks.BeforeExecute(t, executor.NewRunnable(func(context.Context) {}))
		_, ok := m.started.Load(t)
		Expect(ok).To(BeTrue())

		hooks.WorkerExited(t)

		_, ok = m.started.Load(t)
		Expect(ok).To(BeFalse())
	})
})
