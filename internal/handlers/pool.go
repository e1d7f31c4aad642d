package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/tupyy/taskpool/api/v1"
	"github.com/tupyy/taskpool/internal/util"
	"github.com/tupyy/taskpool/pkg/errors"
)

// GetPool returns the pool status
// (GET /pool)
func (h *Handler) GetPool(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewPoolStatusFromModel(h.poolSrv.Status()))
}

// UpdatePool changes sizes and keep-alive settings
// (PATCH /pool)
func (h *Handler) UpdatePool(c *gin.Context) {
	var body v1.PoolUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid request body: " + err.Error()})
		return
	}

	update, err := body.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: err.Error()})
		return
	}
	if update.IsEmpty() {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "no setting to update"})
		return
	}

	status, err := h.poolSrv.Update(update)
	if err != nil {
		if errors.IsIllegalArgumentError(err) {
			c.JSON(http.StatusBadRequest, v1.Error{Error: err.Error()})
			return
		}
		zap.S().Named("pool_handler").Errorw("failed to update pool", "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: "failed to update pool"})
		return
	}

	zap.S().Named("pool_handler").Infow("pool updated", "core", status.CorePoolSize, "max", status.MaximumPoolSize, "keepAlive", status.KeepAlive)
	c.JSON(http.StatusOK, v1.NewPoolStatusFromModel(status))
}

// PurgePool removes cancelled tasks from the queue
// (POST /pool/purge)
func (h *Handler) PurgePool(c *gin.Context) {
	h.poolSrv.Purge()
	c.Status(http.StatusNoContent)
}

// ShutdownPool stops the pool, draining the queue when now is set
// (POST /pool/shutdown)
func (h *Handler) ShutdownPool(c *gin.Context, params v1.ShutdownParams) {
	now := util.Deref(params.Now, false)
	drained := h.poolSrv.Shutdown(now)

	zap.S().Named("pool_handler").Infow("pool shut down", "now", now, "drained", drained)
	c.JSON(http.StatusAccepted, v1.ShutdownResult{
		Phase:   h.poolSrv.Status().Phase,
		Drained: drained,
	})
}
