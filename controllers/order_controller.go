package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/middleware"
	"github.com/stridefoot/footwear-erp-api/models"
	"github.com/stridefoot/footwear-erp-api/services"
	"github.com/stridefoot/footwear-erp-api/utils"
)

// PurchaseOrderField is the multipart field carrying the purchase order file
const PurchaseOrderField = "po_file"

// OrderController serves the order endpoints
type OrderController struct {
	orders    *services.OrderService
	documents *services.DocumentService
	qc        *services.QCService
	log       *logger.Logger
}

func NewOrderController(orders *services.OrderService, documents *services.DocumentService, qc *services.QCService, log *logger.Logger) *OrderController {
	return &OrderController{orders: orders, documents: documents, qc: qc, log: log}
}

// CreateOrderForm is the form submitted to create an order. Quantity is kept
// as text so an empty value can fall back to the extracted one.
type CreateOrderForm struct {
	CustomerID           string `form:"customer_id"`
	CustomerName         string `form:"customer_name"`
	Style                string `form:"style"`
	Quantity             string `form:"quantity"`
	OrderAmount          string `form:"order_amount"`
	DueDate              string `form:"due_date"`
	Priority             string `form:"priority"`
	CustomerRequirements string `form:"customer_requirements"`
}

// UpdateWorkflowRequest is the body of PATCH /api/orders/:id/workflow
type UpdateWorkflowRequest struct {
	CurrentStage *string `json:"current_stage"`
	Status       *string `json:"status"`
	Progress     *int    `json:"progress"`
	AssignedTeam *string `json:"assigned_team"`
}

// CreateOrder handles POST /api/orders
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var form CreateOrderForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindingError(c, err)
		return
	}

	quantity := 0
	if raw := strings.TrimSpace(form.Quantity); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, ctl.log, errs.NewValidationError("quantity", "quantity must be a whole number"))
			return
		}
		quantity = q
	}

	upload, err := formUpload(c, PurchaseOrderField)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	order, err := ctl.orders.CreateOrder(c.Request.Context(), services.OrderIntake{
		CustomerID:           form.CustomerID,
		CustomerName:         form.CustomerName,
		Style:                form.Style,
		Quantity:             quantity,
		OrderAmount:          form.OrderAmount,
		DueDate:              form.DueDate,
		Priority:             form.Priority,
		CustomerRequirements: form.CustomerRequirements,
	}, upload, middleware.ActorFrom(c))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	respondSuccess(c, http.StatusCreated, order)
}

// ListOrders handles GET /api/orders
func (ctl *OrderController) ListOrders(c *gin.Context) {
	orders, err := ctl.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, orders)
}

// RecentOrders handles GET /api/orders/recent?limit=N
func (ctl *OrderController) RecentOrders(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, ctl.log, errs.NewValidationError("limit", "limit must be a positive whole number"))
			return
		}
		limit = n
	}

	orders, err := ctl.orders.RecentOrders(c.Request.Context(), limit)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:id
func (ctl *OrderController) GetOrder(c *gin.Context) {
	order, err := ctl.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, order)
}

// UpdateWorkflow handles PATCH /api/orders/:id/workflow
func (ctl *OrderController) UpdateWorkflow(c *gin.Context) {
	var req UpdateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	var patch models.WorkflowPatch
	if req.CurrentStage != nil {
		stage := models.ProductionStage(*req.CurrentStage)
		patch.Stage = &stage
	}
	if req.Status != nil {
		status := models.OrderStatus(*req.Status)
		patch.Status = &status
	}
	patch.Progress = req.Progress
	patch.AssignedTeam = req.AssignedTeam

	order, err := ctl.orders.UpdateWorkflow(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, order)
}

// ListOrderDocuments handles GET /api/orders/:id/documents
func (ctl *OrderController) ListOrderDocuments(c *gin.Context) {
	docs, err := ctl.documents.ListOrderDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, docs)
}

// ListOrderQCReports handles GET /api/orders/:id/qc-reports
func (ctl *OrderController) ListOrderQCReports(c *gin.Context) {
	reports, err := ctl.qc.ListOrderReports(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, reports)
}

// formUpload reads an optional file field. A missing field, or a request that
// is not multipart at all, yields a nil upload.
func formUpload(c *gin.Context, field string) (*services.Upload, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewValidationError(field, "could not read uploaded file")
	}

	data, err := utils.ReadUploadedFile(fh)
	if err != nil {
		return nil, err
	}

	return &services.Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
