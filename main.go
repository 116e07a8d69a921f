package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stridefoot/footwear-erp-api/config"
	"github.com/stridefoot/footwear-erp-api/jobs"
	"github.com/stridefoot/footwear-erp-api/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	if err := run(cfg, appLog); err != nil {
		appLog.Fatal("Server stopped with error", "error", err)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	log.Info("Starting Footwear ERP API server...", "env", cfg.GoEnv)

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	log.Info("Database migration completed successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		return err
	}
	defer app.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	jobManager := jobs.NewJobManager(app.documents, cfg.UnlinkedDocumentTTL, cfg.UnlinkedSweepSchedule, log)
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server is running", "addr", "http://localhost:"+cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
