package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/models"
)

// OrderQuery filters order listings. Zero fields do not filter.
type OrderQuery struct {
	Statuses   []models.OrderStatus
	Stages     []models.ProductionStage
	CustomerID string
	Limit      int
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Insert creates the order. A duplicate order number is a ConflictError.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Create(order).Error
	return errs.FromDB(err, "insert order", "order", "order_number", order.OrderNumber)
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, errs.FromDB(err, "get order", "order", "id", id)
	}
	return &order, nil
}

// GetForUpdate loads the order and locks its row until the transaction ends.
// Databases without row locks (sqlite) ignore the lock.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", id).Error
	if err != nil {
		return nil, errs.FromDB(err, "get order", "order", "id", id)
	}
	return &order, nil
}

// Query returns orders newest first
func (r *OrderRepository) Query(ctx context.Context, q OrderQuery) ([]models.Order, error) {
	db := r.db.WithContext(ctx).Model(&models.Order{})
	if len(q.Statuses) > 0 {
		db = db.Where("status IN ?", q.Statuses)
	}
	if len(q.Stages) > 0 {
		db = db.Where("current_stage IN ?", q.Stages)
	}
	if q.CustomerID != "" {
		db = db.Where("customer_id = ?", q.CustomerID)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}

	var orders []models.Order
	if err := db.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, errs.FromDB(err, "query orders", "order", "", "")
	}
	return orders, nil
}

// Update applies patch (column name to value) to the order with the given id
func (r *OrderRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return errs.FromDB(result.Error, "update order", "order", "id", id)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("order", id)
	}
	return nil
}

// CountByStatus counts every order grouped by status
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	var rows []countRow
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status AS group_key, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.FromDB(err, "count orders by status", "order", "", "")
	}

	counts := make(map[models.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[models.OrderStatus(row.GroupKey)] = row.Count
	}
	return counts, nil
}

// CountActiveByStage counts pending and in-progress orders grouped by stage
func (r *OrderRepository) CountActiveByStage(ctx context.Context) (map[models.ProductionStage]int64, error) {
	var rows []countRow
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("current_stage AS group_key, COUNT(*) AS count").
		Where("status IN ?", models.ActiveOrderStatuses()).
		Group("current_stage").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.FromDB(err, "count active orders by stage", "order", "", "")
	}

	counts := make(map[models.ProductionStage]int64, len(rows))
	for _, row := range rows {
		counts[models.ProductionStage(row.GroupKey)] = row.Count
	}
	return counts, nil
}
