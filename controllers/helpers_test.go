package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/middleware"
	"github.com/stridefoot/footwear-erp-api/repository"
	"github.com/stridefoot/footwear-erp-api/services"
	"github.com/stridefoot/footwear-erp-api/testutil"
)

type testServer struct {
	router *gin.Engine
	store  *repository.Store
	blobs  *services.MockBlobStorage
}

// newTestServer registers every controller on a router backed by an
// in-memory database. Requests are attributed to actor.
func newTestServer(t *testing.T, actor string, extractor services.Extractor) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewStore(testutil.NewTestDB(t))
	blobs := services.NewMockBlobStorage()
	log := logger.NewNop()

	orders := services.NewOrderService(store, blobs, extractor, services.NewSequenceOrderNumbers("SF"), log)
	documents := services.NewDocumentService(store, blobs, log)
	qc := services.NewQCService(store, log)

	orderCtl := NewOrderController(orders, documents, qc, log)
	documentCtl := NewDocumentController(documents, log)
	qcCtl := NewQCController(qc, log)
	dashboardCtl := NewDashboardController(services.NewDashboardService(store), log)
	userCtl := NewUserController(services.NewUserService(store, nil, log), log)

	router := gin.New()
	api := router.Group("/api", middleware.StaticActor(actor))
	api.GET("/dashboard/stats", dashboardCtl.Stats)
	api.GET("/orders", orderCtl.ListOrders)
	api.POST("/orders", orderCtl.CreateOrder)
	api.GET("/orders/recent", orderCtl.RecentOrders)
	api.GET("/orders/:id", orderCtl.GetOrder)
	api.PATCH("/orders/:id/workflow", orderCtl.UpdateWorkflow)
	api.GET("/orders/:id/documents", orderCtl.ListOrderDocuments)
	api.GET("/orders/:id/qc-reports", orderCtl.ListOrderQCReports)
	api.GET("/qc/reports", qcCtl.ListReports)
	api.POST("/qc/reports", qcCtl.CreateReport)
	api.GET("/documents", documentCtl.ListDocuments)
	api.POST("/documents", documentCtl.UploadDocument)
	api.GET("/documents/:id/file", documentCtl.DownloadDocument)
	api.PUT("/documents/:id/link", documentCtl.LinkDocument)
	api.POST("/users", userCtl.CreateUser)
	api.GET("/users/:id", userCtl.GetUser)
	api.PUT("/users/:id/role", userCtl.UpdateRole)

	return &testServer{router: router, store: store, blobs: blobs}
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	}
	return w, response
}

func (s *testServer) doJSON(t *testing.T, method, path string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return s.do(t, method, path, bytes.NewReader(raw), "application/json")
}

func multipartForm(t *testing.T, fields map[string]string, fileField, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func errorCode(response map[string]interface{}) string {
	errBody, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errBody["code"].(string)
	return code
}

func data(t *testing.T, response map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := response["data"].(map[string]interface{})
	require.True(t, ok, "response has no object data: %v", response)
	return d
}

// failingBlobs wraps the mock storage to fail every Put
func failingBlobs(s *testServer) {
	s.blobs.PutErr = http.ErrHandlerTimeout
}
