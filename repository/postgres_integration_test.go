//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stridefoot/footwear-erp-api/config"
	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/models"
	"github.com/stridefoot/footwear-erp-api/repository"
)

// PostgresStoreIntegrationTestSuite runs the store against a real PostgreSQL
// container to verify locking and constraint translation
type PostgresStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *repository.Store
}

func (suite *PostgresStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("footwear_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(config.Migrate(db))
	suite.store = repository.NewStore(db)
}

func (suite *PostgresStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE qc_reports, documents, orders, users, order_sequences").Error)
}

func (suite *PostgresStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PostgresStoreIntegrationTestSuite) TestSequenceUnderConcurrency() {
	ctx := context.Background()

	const workers = 20
	var (
		mu     sync.Mutex
		values = make(map[int64]bool)
		wg     sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := suite.store.Transaction(ctx, func(tx *repository.Store) error {
				v, err := tx.Sequences().Next(ctx, "SF-2026")
				if err != nil {
					return err
				}
				mu.Lock()
				values[v] = true
				mu.Unlock()
				return nil
			})
			suite.NoError(err)
		}()
	}
	wg.Wait()

	suite.Len(values, workers)
	for v := int64(1); v <= workers; v++ {
		suite.True(values[v], "value %d should have been allocated", v)
	}
}

func (suite *PostgresStoreIntegrationTestSuite) TestDuplicateOrderNumberIsConflict() {
	ctx := context.Background()

	suite.Require().NoError(suite.store.Orders().Insert(ctx, newOrder("SF-2026-000001", models.StatusPending, models.StageCutting)))

	err := suite.store.Orders().Insert(ctx, newOrder("SF-2026-000001", models.StatusPending, models.StageCutting))
	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *PostgresStoreIntegrationTestSuite) TestCountsByGroup() {
	ctx := context.Background()

	for i, status := range []models.OrderStatus{models.StatusPending, models.StatusInProgress, models.StatusCompleted} {
		stage := models.StageStitching
		if status == models.StatusCompleted {
			stage = models.StageCompleted
		}
		suite.Require().NoError(suite.store.Orders().Insert(ctx, newOrder(fmt.Sprintf("SF-2026-%06d", i+1), status, stage)))
	}

	byStage, err := suite.store.Orders().CountActiveByStage(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(2), byStage[models.StageStitching])

	byStatus, err := suite.store.Orders().CountByStatus(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), byStatus[models.StatusCompleted])
}

func (suite *PostgresStoreIntegrationTestSuite) TestExtractedFieldsRoundTrip() {
	ctx := context.Background()

	doc := &models.Document{
		FileName:        "documents/x_po.pdf",
		OriginalName:    "po.pdf",
		DocumentType:    models.DocumentPurchaseOrder,
		FilePath:        "uploads/documents/x_po.pdf",
		ExtractedFields: map[string]interface{}{"customer_name": "Sample Customer Corp", "quantity": float64(2500)},
	}
	suite.Require().NoError(suite.store.Documents().Insert(ctx, doc))

	got, err := suite.store.Documents().Get(ctx, doc.ID)
	suite.Require().NoError(err)
	suite.Equal("Sample Customer Corp", got.ExtractedFields["customer_name"])
	suite.False(got.IsLinked())
}

func TestPostgresStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreIntegrationTestSuite))
}
