package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/tupyy/taskpool/api/v1"
	"github.com/tupyy/taskpool/internal/handlers"
	"github.com/tupyy/taskpool/internal/services"
	"github.com/tupyy/taskpool/pkg/executor"
	"github.com/tupyy/taskpool/pkg/queue"
)

var _ = Describe("Handler", func() {
	var (
		p      *executor.Pool
		router *gin.Engine
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder, v any) {
		Expect(json.Unmarshal(w.Body.Bytes(), v)).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		p, err = executor.New(2, 4, time.Minute, queue.NewUnbounded[executor.Runnable]())
		Expect(err).NotTo(HaveOccurred())

		h := handlers.New(services.NewPoolService(p), services.NewLoadService(p))
		router = gin.New()
		v1.RegisterHandlers(router.Group("/api/v1"), h)
	})

	AfterEach(func() {
		p.ShutdownNow()
		Eventually(p.IsTerminated).Should(BeTrue())
	})

	Describe("GET /pool", func() {
		It("should return the status", func() {
			w := do(http.MethodGet, "/api/v1/pool", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			var st v1.PoolStatus
			decode(w, &st)
			Expect(st.Id).To(Equal(p.ID().String()))
			Expect(st.Phase).To(Equal("Running"))
			Expect(st.CorePoolSize).To(Equal(2))
			Expect(st.MaximumPoolSize).To(Equal(4))
			Expect(st.KeepAlive).To(Equal("1m0s"))
		})
	})

	Describe("PATCH /pool", func() {
		It("should resize the pool", func() {
			w := do(http.MethodPatch, "/api/v1/pool", `{"corePoolSize": 6, "maximumPoolSize": 10, "keepAlive": "5s"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(p.CorePoolSize()).To(Equal(6))
			Expect(p.MaximumPoolSize()).To(Equal(10))
			Expect(p.KeepAliveTime()).To(Equal(5 * time.Second))
		})

		DescribeTable("should answer 400",
			func(body string) {
				w := do(http.MethodPatch, "/api/v1/pool", body)

				Expect(w.Code).To(Equal(http.StatusBadRequest))
				var e v1.Error
				decode(w, &e)
				Expect(e.Error).NotTo(BeEmpty())
			},
			Entry("for a malformed body", `{"corePoolSize":`),
			Entry("for an empty update", `{}`),
			Entry("for a bad duration", `{"keepAlive": "soon"}`),
			Entry("for a core size above the maximum", `{"corePoolSize": 5}`),
			Entry("for a zero maximum", `{"maximumPoolSize": 0}`),
		)
	})

	Describe("POST /pool/purge", func() {
		It("should answer 204", func() {
			Expect(do(http.MethodPost, "/api/v1/pool/purge", "").Code).To(Equal(http.StatusNoContent))
		})
	})

	Describe("POST /pool/shutdown", func() {
		It("should shut down gracefully by default", func() {
			w := do(http.MethodPost, "/api/v1/pool/shutdown", "")

			Expect(w.Code).To(Equal(http.StatusAccepted))
			Expect(p.IsShutdown()).To(BeTrue())
			var res v1.ShutdownResult
			decode(w, &res)
			Expect(res.Drained).To(BeZero())
		})

		It("should stop when now is set", func() {
			w := do(http.MethodPost, "/api/v1/pool/shutdown?now=true", "")

			Expect(w.Code).To(Equal(http.StatusAccepted))
			Expect(p.Phase()).To(BeNumerically(">=", executor.PhaseStop))
		})

		It("should reject a malformed flag", func() {
			Expect(do(http.MethodPost, "/api/v1/pool/shutdown?now=maybe", "").Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("tasks", func() {
		It("should submit a batch and report its progress", func() {
			// Given
			w := do(http.MethodPost, "/api/v1/tasks", `{"count": 4, "duration": "1ms", "failEvery": 2}`)
			Expect(w.Code).To(Equal(http.StatusAccepted))
			var res v1.LoadResult
			decode(w, &res)
			Expect(res.Accepted).To(Equal(4))

			// When
			var st v1.BatchStatus
			Eventually(func() bool {
				w := do(http.MethodGet, "/api/v1/tasks/"+res.Batch, "")
				Expect(w.Code).To(Equal(http.StatusOK))
				decode(w, &st)
				return st.Done
			}).Should(BeTrue())

			// Then
			Expect(st.Succeeded).To(Equal(2))
			Expect(st.Failed).To(Equal(2))
		})

		It("should answer 400 without a count", func() {
			Expect(do(http.MethodPost, "/api/v1/tasks", `{"duration": "1s"}`).Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 409 once the pool is shut down", func() {
			p.Shutdown()

			Expect(do(http.MethodPost, "/api/v1/tasks", `{"count": 1}`).Code).To(Equal(http.StatusConflict))
		})

		It("should answer 404 for an unknown batch", func() {
			Expect(do(http.MethodGet, "/api/v1/tasks/7d9a4d7e-3a89-4c8e-9a57-0c5a3d0cbf11", "").Code).To(Equal(http.StatusNotFound))
		})

		It("should answer 400 for a malformed batch id", func() {
			Expect(do(http.MethodGet, "/api/v1/tasks/abc", "").Code).To(Equal(http.StatusBadRequest))
		})
	})
})
