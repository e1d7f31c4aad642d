package handlers

import (
	v1 "github.com/tupyy/taskpool/api/v1"
	"github.com/tupyy/taskpool/internal/services"
)

type Handler struct {
	poolSrv *services.PoolService
	loadSrv *services.LoadService
}

var _ v1.ServerInterface = &Handler{}

func New(poolSrv *services.PoolService, loadSrv *services.LoadService) *Handler {
	return &Handler{
		poolSrv: poolSrv,
		loadSrv: loadSrv,
	}
}
