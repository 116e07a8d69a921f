package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/models"
)

type QCReportQuery struct {
	OrderID string
	Limit   int
}

type QCReportRepository struct {
	db *gorm.DB
}

func NewQCReportRepository(db *gorm.DB) *QCReportRepository {
	return &QCReportRepository{db: db}
}

func (r *QCReportRepository) Insert(ctx context.Context, report *models.QCReport) error {
	err := r.db.WithContext(ctx).Create(report).Error
	return errs.FromDB(err, "insert qc report", "qc_report", "id", report.ID)
}

// Query returns reports newest first
func (r *QCReportRepository) Query(ctx context.Context, q QCReportQuery) ([]models.QCReport, error) {
	db := r.db.WithContext(ctx).Model(&models.QCReport{})
	if q.OrderID != "" {
		db = db.Where("order_id = ?", q.OrderID)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}

	var reports []models.QCReport
	if err := db.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, errs.FromDB(err, "query qc reports", "qc_report", "", "")
	}
	return reports, nil
}

// CountByStatus counts every report grouped by qc_status
func (r *QCReportRepository) CountByStatus(ctx context.Context) (map[models.QCStatus]int64, error) {
	var rows []countRow
	err := r.db.WithContext(ctx).Model(&models.QCReport{}).
		Select("qc_status AS group_key, COUNT(*) AS count").
		Group("qc_status").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.FromDB(err, "count qc reports by status", "qc_report", "", "")
	}

	counts := make(map[models.QCStatus]int64, len(rows))
	for _, row := range rows {
		counts[models.QCStatus(row.GroupKey)] = row.Count
	}
	return counts, nil
}
