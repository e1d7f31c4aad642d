package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/tupyy/taskpool/api/v1"
	"github.com/tupyy/taskpool/pkg/errors"
)

// CreateTasks submits a batch of synthetic tasks
// (POST /tasks)
func (h *Handler) CreateTasks(c *gin.Context) {
	var body v1.LoadRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid request body: " + err.Error()})
		return
	}

	req, err := body.ToModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: err.Error()})
		return
	}

	result, err := h.loadSrv.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.IsIllegalStateError(err) {
			c.JSON(http.StatusConflict, v1.Error{Error: err.Error()})
			return
		}
		zap.S().Named("tasks_handler").Errorw("failed to submit batch", "error", err)
		c.JSON(http.StatusInternalServerError, v1.Error{Error: "failed to submit batch"})
		return
	}

	c.JSON(http.StatusAccepted, v1.NewLoadResultFromModel(result))
}

// GetBatch returns the progress of a submitted batch
// (GET /tasks/{batch})
func (h *Handler) GetBatch(c *gin.Context, batch string) {
	id, err := uuid.Parse(batch)
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.Error{Error: "invalid batch id"})
		return
	}

	status, ok := h.loadSrv.Batch(id)
	if !ok {
		c.JSON(http.StatusNotFound, v1.Error{Error: "batch not found"})
		return
	}

	c.JSON(http.StatusOK, v1.NewBatchStatusFromModel(status))
}
