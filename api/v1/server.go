package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /pool)
	GetPool(c *gin.Context)
	// (PATCH /pool)
	UpdatePool(c *gin.Context)
	// (POST /pool/purge)
	PurgePool(c *gin.Context)
	// (POST /pool/shutdown)
	ShutdownPool(c *gin.Context, params ShutdownParams)
	// (POST /tasks)
	CreateTasks(c *gin.Context)
	// (GET /tasks/{batch})
	GetBatch(c *gin.Context, batch string)
}

type serverWrapper struct {
	handler ServerInterface
}

func (w *serverWrapper) ShutdownPool(c *gin.Context) {
	var params ShutdownParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, Error{Error: "invalid parameter now: " + err.Error()})
		return
	}
	w.handler.ShutdownPool(c, params)
}

func (w *serverWrapper) GetBatch(c *gin.Context) {
	w.handler.GetBatch(c, c.Param("batch"))
}

// RegisterHandlers creates the routes of ServerInterface on router.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	w := &serverWrapper{handler: si}

	router.GET("/pool", si.GetPool)
	router.PATCH("/pool", si.UpdatePool)
	router.POST("/pool/purge", si.PurgePool)
	router.POST("/pool/shutdown", w.ShutdownPool)
	router.POST("/tasks", si.CreateTasks)
	router.GET("/tasks/:batch", w.GetBatch)
}
