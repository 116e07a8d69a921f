package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QCReport is a quality-control inspection record tied to exactly one order
type QCReport struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	OrderID           string    `gorm:"not null;index;size:36" json:"order_id"`
	Inspector         string    `json:"inspector"`
	InspectionDate    time.Time `json:"inspection_date"`
	DefectsFound      int       `gorm:"not null;default:0;check:defects_found >= 0" json:"defects_found"`
	DefectDescription string    `gorm:"type:text" json:"defect_description"`
	QCStatus          QCStatus  `gorm:"column:qc_status;not null;default:'pending';index;size:20" json:"qc_status"`
	Notes             string    `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for the QCReport model
func (QCReport) TableName() string {
	return "qc_reports"
}

func (r *QCReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
