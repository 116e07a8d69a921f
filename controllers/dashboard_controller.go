package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/services"
)

type DashboardController struct {
	dashboard *services.DashboardService
	log       *logger.Logger
}

func NewDashboardController(dashboard *services.DashboardService, log *logger.Logger) *DashboardController {
	return &DashboardController{dashboard: dashboard, log: log}
}

// Stats handles GET /api/dashboard/stats
func (ctl *DashboardController) Stats(c *gin.Context) {
	stats, err := ctl.dashboard.ComputeStats(c.Request.Context())
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, stats)
}
