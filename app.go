package main

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/stridefoot/footwear-erp-api/config"
	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/repository"
	"github.com/stridefoot/footwear-erp-api/services"
)

// application holds the services shared by the router and background jobs
type application struct {
	cfg   *config.Config
	log   *logger.Logger
	store *repository.Store

	orders    *services.OrderService
	documents *services.DocumentService
	qc        *services.QCService
	dashboard *services.DashboardService
	users     *services.UserService

	closers []func() error
}

func newApplication(ctx context.Context, cfg *config.Config, log *logger.Logger, db *gorm.DB) (*application, error) {
	app := &application{cfg: cfg, log: log, store: repository.NewStore(db)}

	blobs, err := app.blobStorage(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	extractor, err := app.extractor(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	numbers, err := app.orderNumbers(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	var identity services.IdentityProvider
	if cfg.AuthEnabled() {
		identity = services.NewAuth0Service(cfg.Auth0Domain)
	}

	app.orders = services.NewOrderService(app.store, blobs, extractor, numbers, log)
	app.documents = services.NewDocumentService(app.store, blobs, log)
	app.qc = services.NewQCService(app.store, log)
	app.dashboard = services.NewDashboardService(app.store)
	app.users = services.NewUserService(app.store, identity, log)
	return app, nil
}

func (app *application) blobStorage(ctx context.Context) (services.BlobStorage, error) {
	switch app.cfg.StorageBackend {
	case config.StorageS3:
		s3Storage, err := services.NewS3Storage(ctx, app.cfg)
		if err != nil {
			return nil, err
		}
		app.log.Info("Using S3 document storage", "bucket", app.cfg.AWSS3Bucket)
		return s3Storage, nil
	case config.StorageGCS:
		gcs, err := services.NewGCSStorage(ctx, app.cfg.GCSBucket, services.GCPClientOptionsFromEnv()...)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, gcs.Close)
		app.log.Info("Using GCS document storage", "bucket", app.cfg.GCSBucket)
		return gcs, nil
	case config.StorageLocal:
		local, err := services.NewLocalStorage(app.cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		app.log.Info("Using local document storage", "dir", app.cfg.UploadDir)
		return local, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", app.cfg.StorageBackend)
	}
}

func (app *application) extractor(ctx context.Context) (services.Extractor, error) {
	switch app.cfg.ExtractionMode {
	case config.ExtractionDocumentAI:
		ext, err := services.NewDocumentAIExtractor(ctx, services.DocumentAIConfig{
			ProjectID:   app.cfg.DocumentAIProjectID,
			Location:    app.cfg.DocumentAILocation,
			ProcessorID: app.cfg.DocumentAIProcessorID,
		}, app.log, services.GCPClientOptionsFromEnv()...)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, ext.Close)
		return ext, nil
	case config.ExtractionSample:
		return services.SampleExtractor{}, nil
	default:
		return services.NoopExtractor{}, nil
	}
}

func (app *application) orderNumbers(ctx context.Context) (services.OrderNumberGenerator, error) {
	if app.cfg.OrderSequenceBackend != config.SequenceRedis {
		return services.NewSequenceOrderNumbers(app.cfg.OrderNumberPrefix), nil
	}

	rdb, err := services.NewRedisClient(ctx, app.cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, rdb.Close)
	app.log.Info("Using Redis order sequence")
	return services.NewRedisOrderNumbers(rdb, app.cfg.OrderNumberPrefix), nil
}

// Close releases external clients in reverse order of creation
func (app *application) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.log.Warn("Failed to close client", "error", err)
		}
	}
	app.closers = nil
}
