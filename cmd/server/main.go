package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/pastry-manager-api/internal/app"
	"github.com/yukikurage/pastry-manager-api/internal/config"
	"github.com/yukikurage/pastry-manager-api/internal/database"
	"github.com/yukikurage/pastry-manager-api/internal/handlers"
	"github.com/yukikurage/pastry-manager-api/internal/logger"
	"github.com/yukikurage/pastry-manager-api/internal/storage"
)

const (
	shutdownTimeout = 15 * time.Second
	// room for multipart framing around the largest accepted file
	multipartOverheadBytes = 1 << 20
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logs := logger.New(cfg.Log.Level, os.Stdout)

	// Set Gin mode
	gin.SetMode(cfg.App.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logs.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if cfg.MigrateOnStart() {
		if err := database.Migrate(db); err != nil {
			logs.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Object storage
	files, err := storage.FromConfig(cfg)
	if err != nil {
		logs.Fatalf("Failed to create object storage client: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := files.EnsureBucket(ctx); err != nil {
		logs.WithError(err).Warn("Object storage bucket is not available yet")
	}
	cancel()

	a := app.New(db, files, cfg.PresignExpiry(), logs)

	router := handlers.NewRouter(a, handlers.RouterOptions{
		Logger:       logs,
		ExposeErrors: cfg.IsDevelopment(),
		Checks: map[string]handlers.Checker{
			"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
			"storage":  files.Ready,
		},
		MaxUploadBytes: cfg.FileUpload.MaxFileSizeBytes + multipartOverheadBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logs.Infof("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logs.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logs.Info("Shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logs.WithError(err).Error("Server shutdown failed")
	}
	if err := a.Wait(shutdownCtx); err != nil {
		logs.WithError(err).Warn("Pending object removals did not finish")
	}
	if err := database.Close(db); err != nil {
		logs.WithError(err).Error("Failed to close database")
	}
}
