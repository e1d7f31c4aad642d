package server_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tupyy/taskpool/internal/config"
	"github.com/tupyy/taskpool/internal/server"
)

var _ = Describe("Server", func() {
	var cfg *config.Configuration

	BeforeEach(func() {
		var err error
		cfg, err = config.NewConfigurationWithDefaults()
		Expect(err).NotTo(HaveOccurred())
		cfg.Server.ServerMode = "prod"
	})

	get := func(h http.Handler, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("should mount handlers under /api/v1", func() {
		srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
			router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
		})
		Expect(err).NotTo(HaveOccurred())

		w := get(srv.Handler(), "/api/v1/ping")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("pong"))
		Expect(get(srv.Handler(), "/ping").Code).To(Equal(http.StatusNotFound))
	})

	It("should recover from a panicking handler", func() {
		srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
			router.GET("/boom", func(*gin.Context) { panic("boom") })
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(get(srv.Handler(), "/api/v1/boom").Code).To(Equal(http.StatusInternalServerError))
	})

	It("should expose metrics when asked to", func() {
		reg := prometheus.NewRegistry()
		counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"})
		reg.MustRegister(counter)
		counter.Inc()

		srv, err := server.NewServer(cfg, func(*gin.RouterGroup) {}, server.WithMetrics(reg))
		Expect(err).NotTo(HaveOccurred())

		w := get(srv.Handler(), "/metrics")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("test_total 1"))
	})

	It("should refuse an unknown mode", func() {
		cfg.Server.ServerMode = "staging"

		_, err := server.NewServer(cfg, func(*gin.RouterGroup) {})

		Expect(err).To(HaveOccurred())
	})
})
