package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/middleware"
	"github.com/stridefoot/footwear-erp-api/models"
	"github.com/stridefoot/footwear-erp-api/services"
)

// DocumentFileField is the multipart field carrying an uploaded document
const DocumentFileField = "file"

// DocumentController serves document listing, upload and download
type DocumentController struct {
	documents *services.DocumentService
	log       *logger.Logger
}

func NewDocumentController(documents *services.DocumentService, log *logger.Logger) *DocumentController {
	return &DocumentController{documents: documents, log: log}
}

// UploadDocumentForm is the multipart form of POST /api/documents
type UploadDocumentForm struct {
	OrderID      string `form:"order_id"`
	DocumentType string `form:"document_type"`
}

// ListDocuments handles GET /api/documents
func (ctl *DocumentController) ListDocuments(c *gin.Context) {
	docs, err := ctl.documents.ListDocuments(c.Request.Context())
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, docs)
}

// UploadDocument handles POST /api/documents. Without an order_id the file
// is staged unlinked and must be linked with PUT /api/documents/:id/link.
func (ctl *DocumentController) UploadDocument(c *gin.Context) {
	var form UploadDocumentForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindingError(c, err)
		return
	}

	upload, err := formUpload(c, DocumentFileField)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	if upload == nil {
		respondError(c, ctl.log, errs.NewValidationError(DocumentFileField, "file is required"))
		return
	}

	docType := models.DocumentType(form.DocumentType)
	actor := middleware.ActorFrom(c)

	var doc *models.Document
	if form.OrderID == "" {
		doc, err = ctl.documents.StageDocument(c.Request.Context(), upload, docType, actor)
	} else {
		doc, err = ctl.documents.UploadDocument(c.Request.Context(), form.OrderID, docType, upload, actor)
	}
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	respondSuccess(c, http.StatusCreated, doc)
}

// LinkDocumentRequest is the body of PUT /api/documents/:id/link
type LinkDocumentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// LinkDocument handles PUT /api/documents/:id/link
func (ctl *DocumentController) LinkDocument(c *gin.Context) {
	var req LinkDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	doc, err := ctl.documents.LinkDocument(c.Request.Context(), c.Param("id"), req.OrderID)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondSuccess(c, http.StatusOK, doc)
}

// DownloadDocument handles GET /api/documents/:id/file - streams the stored
// content of a linked document
func (ctl *DocumentController) DownloadDocument(c *gin.Context) {
	doc, content, err := ctl.documents.OpenDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	defer content.Close()

	contentType := doc.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, doc.FileSize, contentType, content, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, quoteFilename(doc.OriginalName)),
		"Cache-Control":       "private, max-age=300",
	})
}

// quoteFilename keeps a client supplied name safe inside a quoted header value
func quoteFilename(name string) string {
	return strings.NewReplacer(`"`, "", "\r", "", "\n", "", `\`, "").Replace(name)
}
