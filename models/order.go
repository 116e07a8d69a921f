package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// DefaultPriority is applied when intake does not name one
	DefaultPriority = "normal"
	// MaxProgress is the upper bound of Order.Progress
	MaxProgress = 100
)

// Order represents a footwear purchase order moving through production
type Order struct {
	ID                   string          `gorm:"primaryKey;size:36" json:"id"`
	OrderNumber          string          `gorm:"uniqueIndex;not null;size:32" json:"order_number"` // immutable once assigned
	CustomerID           string          `gorm:"not null;index" json:"customer_id"`
	CustomerName         string          `gorm:"not null" json:"customer_name"`
	Style                string          `gorm:"not null" json:"style"`
	Quantity             int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	OrderAmount          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"order_amount"`
	DueDate              *time.Time      `json:"due_date"`
	CurrentStage         ProductionStage `gorm:"not null;default:'cutting';index;size:20" json:"current_stage"`
	Status               OrderStatus     `gorm:"not null;default:'pending';index;size:20" json:"status"`
	Priority             string          `gorm:"not null;default:'normal'" json:"priority"`
	CustomerRequirements string          `gorm:"type:text" json:"customer_requirements"`
	Progress             int             `gorm:"not null;default:0" json:"progress"`
	AssignedTeam         string          `json:"assigned_team"`
	CreatedBy            string          `json:"created_by"`
	CreatedAt            time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a UUID when the caller did not set one
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
