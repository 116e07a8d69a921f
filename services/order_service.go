package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/models"
	"github.com/stridefoot/footwear-erp-api/repository"
)

const (
	DefaultRecentOrders = 3
	MaxRecentOrders     = 100
)

// maxOrderAmount is the first value that no longer fits numeric(10,2)
var maxOrderAmount = decimal.New(1, 8)

// OrderIntake is an order as submitted by a merchandiser. OrderAmount and
// DueDate are raw strings; a zero Quantity means not submitted.
type OrderIntake struct {
	CustomerID           string
	CustomerName         string
	Style                string
	Quantity             int
	OrderAmount          string
	DueDate              string
	Priority             string
	CustomerRequirements string
}

// OrderService manages the order lifecycle from intake through the
// production workflow
type OrderService struct {
	store     *repository.Store
	blobs     BlobStorage
	extractor Extractor
	numbers   OrderNumberGenerator
	log       *logger.Logger
	now       func() time.Time
}

func NewOrderService(store *repository.Store, blobs BlobStorage, extractor Extractor, numbers OrderNumberGenerator, log *logger.Logger) *OrderService {
	return &OrderService{
		store:     store,
		blobs:     blobs,
		extractor: extractor,
		numbers:   numbers,
		log:       log.With("service", "OrderService"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder creates an order from intake data and an optional purchase
// order file. Fields extracted from the file take precedence over the
// submitted ones. The order, its number and the purchase order Document are
// committed together; if that fails the stored file is removed.
func (s *OrderService) CreateOrder(ctx context.Context, intake OrderIntake, upload *Upload, actor string) (*models.Order, error) {
	dueDate, err := parseDueDate(intake.DueDate)
	if err != nil {
		return nil, err
	}

	var (
		blob      *storedBlob
		extracted ExtractedFields
	)
	if upload != nil {
		blob, err = putUpload(ctx, s.blobs, upload)
		if err != nil {
			return nil, err
		}
		extracted = s.extractor.Extract(ctx, upload.Data, blob.contentType)
		intake = s.mergeExtracted(intake, extracted)
	}

	order, err := buildOrder(intake, dueDate, actor)
	if err != nil {
		discardBlob(ctx, s.blobs, s.log, blob)
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		number, err := s.numbers.Next(ctx, tx, s.now())
		if err != nil {
			return err
		}
		order.OrderNumber = number

		var doc *models.Document
		if blob != nil {
			doc, err = stageDocument(ctx, tx, blob, models.DocumentPurchaseOrder, actor, extracted)
			if err != nil {
				return err
			}
		}

		if err := tx.Orders().Insert(ctx, order); err != nil {
			return err
		}

		if doc != nil {
			if _, err := linkDocument(ctx, tx, doc.ID, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		discardBlob(ctx, s.blobs, s.log, blob)
		s.log.Warn("Order creation failed", "customer_id", order.CustomerID, "error", err)
		return nil, err
	}

	s.log.Info("Order created", "order_id", order.ID, "order_number", order.OrderNumber, "with_document", blob != nil)
	return order, nil
}

// UpdateWorkflow moves an order through the production workflow
func (s *OrderService) UpdateWorkflow(ctx context.Context, id string, patch models.WorkflowPatch) (*models.Order, error) {
	if patch.IsEmpty() {
		return nil, errs.NewValidationError("workflow", "at least one of current_stage, status, progress or assigned_team is required")
	}

	var updated *models.Order
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		order, err := tx.Orders().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := order.ApplyWorkflow(patch); err != nil {
			return err
		}
		order.UpdatedAt = s.now()

		err = tx.Orders().Update(ctx, id, map[string]interface{}{
			"current_stage": order.CurrentStage,
			"status":        order.Status,
			"progress":      order.Progress,
			"assigned_team": order.AssignedTeam,
			"updated_at":    order.UpdatedAt,
		})
		if err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Order workflow updated", "order_id", id, "stage", updated.CurrentStage, "status", updated.Status)
	return updated, nil
}

// ListOrders returns every order, newest first
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.Orders().Query(ctx, repository.OrderQuery{})
}

// RecentOrders returns the newest orders. A non-positive limit means the
// default of 3; limits above 100 are capped.
func (s *OrderService) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = DefaultRecentOrders
	}
	if limit > MaxRecentOrders {
		limit = MaxRecentOrders
	}
	return s.store.Orders().Query(ctx, repository.OrderQuery{Limit: limit})
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.store.Orders().Get(ctx, id)
}

// mergeExtracted overlays every usable extracted field onto the intake.
// An extracted amount that would not be accepted keeps the submitted one.
func (s *OrderService) mergeExtracted(intake OrderIntake, fields ExtractedFields) OrderIntake {
	if fields.CustomerName != nil && strings.TrimSpace(*fields.CustomerName) != "" {
		intake.CustomerName = *fields.CustomerName
	}
	if fields.Style != nil && strings.TrimSpace(*fields.Style) != "" {
		intake.Style = *fields.Style
	}
	if fields.Quantity != nil && *fields.Quantity > 0 {
		intake.Quantity = *fields.Quantity
	}
	if fields.OrderAmount != nil {
		raw := fields.OrderAmount.String()
		if _, err := parseOrderAmount(raw); err != nil {
			s.log.Warn("Ignoring extracted order amount", "order_amount", raw, "error", err)
		} else {
			intake.OrderAmount = raw
		}
	}
	return intake
}

func buildOrder(intake OrderIntake, dueDate *time.Time, actor string) (*models.Order, error) {
	customerID := strings.TrimSpace(intake.CustomerID)
	if customerID == "" {
		return nil, errs.NewValidationError("customer_id", "customer_id is required")
	}
	customerName := strings.TrimSpace(intake.CustomerName)
	if customerName == "" {
		return nil, errs.NewValidationError("customer_name", "customer_name is required")
	}
	style := strings.TrimSpace(intake.Style)
	if style == "" {
		return nil, errs.NewValidationError("style", "style is required")
	}
	if intake.Quantity <= 0 {
		return nil, errs.NewValidationError("quantity", "quantity must be greater than 0")
	}

	amount, err := parseOrderAmount(intake.OrderAmount)
	if err != nil {
		return nil, err
	}

	priority := strings.TrimSpace(intake.Priority)
	if priority == "" {
		priority = models.DefaultPriority
	}

	return &models.Order{
		CustomerID:           customerID,
		CustomerName:         customerName,
		Style:                style,
		Quantity:             intake.Quantity,
		OrderAmount:          amount,
		DueDate:              dueDate,
		CurrentStage:         models.StageCutting,
		Status:               models.StatusPending,
		Priority:             priority,
		CustomerRequirements: intake.CustomerRequirements,
		Progress:             0,
		CreatedBy:            actor,
	}, nil
}

// parseOrderAmount accepts a plain decimal string; empty means zero.
// Amounts are rounded to cents.
func parseOrderAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errs.NewValidationError("order_amount", fmt.Sprintf("invalid amount %q", raw))
	}
	if amount.IsNegative() {
		return decimal.Zero, errs.NewValidationError("order_amount", "order_amount must not be negative")
	}
	amount = amount.Round(2)
	if amount.GreaterThanOrEqual(maxOrderAmount) {
		return decimal.Zero, errs.NewValidationError("order_amount", "order_amount must be less than 100000000")
	}
	return amount, nil
}

var dueDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// parseDueDate accepts ISO-8601 dates and datetimes; empty means no due date
func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errs.NewValidationError("due_date", fmt.Sprintf("invalid date %q, expected ISO-8601 such as 2026-03-31", raw))
}
