package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/stridefoot/footwear-erp-api/models"
	"github.com/stridefoot/footwear-erp-api/repository"
)

// UncomputedRevenue is reported while monthly revenue is not calculated
const UncomputedRevenue = "0"

// DashboardStats summarizes orders and QC outcomes
type DashboardStats struct {
	ActiveOrders           int64                            `json:"active_orders"`
	CompletedOrders        int64                            `json:"completed_orders"`
	PendingQC              int64                            `json:"pending_qc"`
	MonthlyRevenue         string                           `json:"monthly_revenue"`
	MonthlyRevenueComputed bool                             `json:"monthly_revenue_computed"`
	ProductionPipeline     map[models.ProductionStage]int64 `json:"production_pipeline"`
	QCStatus               map[models.QCStatus]int64        `json:"qc_status"`
}

// DashboardService computes dashboard statistics on demand
type DashboardService struct {
	store *repository.Store
}

func NewDashboardService(store *repository.Store) *DashboardService {
	return &DashboardService{store: store}
}

// ComputeStats runs the three grouped counts concurrently. The counts are not
// taken from a single snapshot, so concurrent writes can skew them slightly.
func (s *DashboardService) ComputeStats(ctx context.Context) (*DashboardStats, error) {
	var (
		byStatus   map[models.OrderStatus]int64
		byStage    map[models.ProductionStage]int64
		byQCStatus map[models.QCStatus]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byStatus, err = s.store.Orders().CountByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		byStage, err = s.store.Orders().CountActiveByStage(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		byQCStatus, err = s.store.QCReports().CountByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		CompletedOrders:        byStatus[models.StatusCompleted],
		PendingQC:              byQCStatus[models.QCPending],
		MonthlyRevenue:         UncomputedRevenue,
		MonthlyRevenueComputed: false,
		ProductionPipeline:     make(map[models.ProductionStage]int64, len(models.AllProductionStages())),
		QCStatus:               make(map[models.QCStatus]int64, len(models.AllQCStatuses())),
	}

	for _, status := range models.ActiveOrderStatuses() {
		stats.ActiveOrders += byStatus[status]
	}
	for _, stage := range models.AllProductionStages() {
		stats.ProductionPipeline[stage] = byStage[stage]
	}
	for _, status := range models.AllQCStatuses() {
		stats.QCStatus[status] = byQCStatus[status]
	}

	return stats, nil
}
