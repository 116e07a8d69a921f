package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/models"
	"github.com/stridefoot/footwear-erp-api/repository"
	"github.com/stridefoot/footwear-erp-api/testutil"
)

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

// MockExtractor is a testify mock of Extractor
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, data []byte, mimeType string) ExtractedFields {
	args := m.Called(ctx, data, mimeType)
	return args.Get(0).(ExtractedFields)
}

// fixedNumbers hands out the same order number every time
type fixedNumbers struct {
	number string
}

func (f fixedNumbers) Next(context.Context, *repository.Store, time.Time) (string, error) {
	return f.number, nil
}

type testEnv struct {
	store *repository.Store
	blobs *MockBlobStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		store: repository.NewStore(testutil.NewTestDB(t)),
		blobs: NewMockBlobStorage(),
	}
}

func (e *testEnv) orderService(extractor Extractor, numbers OrderNumberGenerator) *OrderService {
	if numbers == nil {
		numbers = NewSequenceOrderNumbers("SF")
	}
	svc := NewOrderService(e.store, e.blobs, extractor, numbers, logger.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func (e *testEnv) documentService() *DocumentService {
	return NewDocumentService(e.store, e.blobs, logger.NewNop())
}

// seedOrder inserts an order directly through the store
func (e *testEnv) seedOrder(t *testing.T, number string, status models.OrderStatus, stage models.ProductionStage) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber:  number,
		CustomerID:   "CUST-1",
		CustomerName: "Acme Footwear",
		Style:        "Runner",
		Quantity:     100,
		CurrentStage: stage,
		Status:       status,
		Priority:     models.DefaultPriority,
	}
	require.NoError(t, e.store.Orders().Insert(context.Background(), order))
	return order
}

func validIntake() OrderIntake {
	return OrderIntake{
		CustomerID:           "CUST-001",
		CustomerName:         "Northwind Shoes",
		Style:                "Trail Runner X",
		Quantity:             1200,
		OrderAmount:          "48000.50",
		DueDate:              "2026-06-30",
		Priority:             "high",
		CustomerRequirements: "Vegan leather",
	}
}

func pdfUpload(name string) *Upload {
	return &Upload{FileName: name, ContentType: "application/pdf", Data: []byte("%PDF-1.4 purchase order")}
}
