package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/middleware"
	"github.com/stridefoot/footwear-erp-api/services"
)

// QCController serves quality-control inspection endpoints
type QCController struct {
	qc  *services.QCService
	log *logger.Logger
}

func NewQCController(qc *services.QCService, log *logger.Logger) *QCController {
	return &QCController{qc: qc, log: log}
}

// CreateQCReportRequest is the body of POST /api/qc/reports
type CreateQCReportRequest struct {
	OrderID           string `json:"order_id" binding:"required"`
	DefectsFound      *int   `json:"defects_found"`
	DefectDescription string `json:"defect_description"`
	QCStatus          string `json:"qc_status"`
	Notes             string `json:"notes"`
}

// CreateReport handles POST /api/qc/reports
func (ctl *QCController) CreateReport(c *gin.Context) {
	var req CreateQCReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	report, err := ctl.qc.RecordInspection(c.Request.Context(), services.QCInspection{
		OrderID:           req.OrderID,
		DefectsFound:      req.DefectsFound,
		DefectDescription: req.DefectDescription,
		QCStatus:          req.QCStatus,
		Notes:             req.Notes,
	}, middleware.ActorFrom(c))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	respondSuccess(c, http.StatusCreated, report)
}

// ListReports handles GET /api/qc/reports
func (ctl *QCController) ListReports(c *gin.Context) {
	reports, err := ctl.qc.ListReports(c.Request.Context())
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, reports)
}
