package services

import (
	"context"
	"time"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/models"
	"github.com/stridefoot/footwear-erp-api/repository"
)

// QCInspection is the input for recording a quality-control inspection.
// A nil DefectsFound means zero; an empty QCStatus means pending.
type QCInspection struct {
	OrderID           string
	DefectsFound      *int
	DefectDescription string
	QCStatus          string
	Notes             string
}

// QCService records quality-control inspections against orders. Recording an
// inspection never changes the order itself.
type QCService struct {
	store *repository.Store
	log   *logger.Logger
	now   func() time.Time
}

func NewQCService(store *repository.Store, log *logger.Logger) *QCService {
	return &QCService{
		store: store,
		log:   log.With("service", "QCService"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *QCService) RecordInspection(ctx context.Context, in QCInspection, actor string) (*models.QCReport, error) {
	if in.OrderID == "" {
		return nil, errs.NewValidationError("order_id", "order_id is required")
	}

	defects := 0
	if in.DefectsFound != nil {
		defects = *in.DefectsFound
	}
	if defects < 0 {
		return nil, errs.NewValidationError("defects_found", "defects_found must not be negative")
	}

	status, err := models.ParseQCStatus(in.QCStatus)
	if err != nil {
		return nil, errs.NewValidationError("qc_status", err.Error())
	}

	now := s.now()
	report := &models.QCReport{
		OrderID:           in.OrderID,
		Inspector:         actor,
		InspectionDate:    now,
		DefectsFound:      defects,
		DefectDescription: in.DefectDescription,
		QCStatus:          status,
		Notes:             in.Notes,
		CreatedAt:         now,
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Orders().Get(ctx, in.OrderID); err != nil {
			return err
		}
		return tx.QCReports().Insert(ctx, report)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("QC inspection recorded", "report_id", report.ID, "order_id", report.OrderID, "qc_status", report.QCStatus)
	return report, nil
}

// ListReports returns every report, newest first
func (s *QCService) ListReports(ctx context.Context) ([]models.QCReport, error) {
	return s.store.QCReports().Query(ctx, repository.QCReportQuery{})
}

// ListOrderReports returns the reports of one order, newest first
func (s *QCService) ListOrderReports(ctx context.Context, orderID string) ([]models.QCReport, error) {
	if _, err := s.store.Orders().Get(ctx, orderID); err != nil {
		return nil, err
	}
	return s.store.QCReports().Query(ctx, repository.QCReportQuery{OrderID: orderID})
}
