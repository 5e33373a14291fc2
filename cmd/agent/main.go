package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/pastry-manager-api/internal/agent"
	"github.com/yukikurage/pastry-manager-api/internal/app"
	"github.com/yukikurage/pastry-manager-api/internal/config"
	"github.com/yukikurage/pastry-manager-api/internal/database"
	"github.com/yukikurage/pastry-manager-api/internal/logger"
	"github.com/yukikurage/pastry-manager-api/internal/storage"
)

func main() {
	// stdout carries the protocol; every log line goes to stderr
	log.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logs := logger.New(cfg.Log.Level, os.Stderr)

	db, err := database.Connect(cfg)
	if err != nil {
		logs.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if cfg.MigrateOnStart() {
		if err := database.Migrate(db); err != nil {
			logs.Fatalf("Failed to run migrations: %v", err)
		}
	}

	files, err := storage.FromConfig(cfg)
	if err != nil {
		logs.Fatalf("Failed to create object storage client: %v", err)
	}

	a := app.New(db, files, cfg.PresignExpiry(), logs)
	server := agent.NewServer(a, logs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logs.Info("Agent tool server listening on stdio")
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logs.WithError(err).Error("Agent tool server stopped")
	}

	waitCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.Wait(waitCtx); err != nil {
		logs.WithError(err).Warn("Pending object removals did not finish")
	}
}
