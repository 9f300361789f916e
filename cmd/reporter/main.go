package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/artifact"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/config"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/infrastructure/database"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/report"
	postgres_event_repo "github.com/alexisfrangulefrei/projetsiteecommerce/internal/repository/event_repo/postgres"
)

// One-shot analytics run: scan the order event log, write today's
// report to the artifact store, exit. Meant to be scheduled externally
// (cron or similar).
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	appLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("Analytics Reporter starting...")

	db, err := database.NewPostgresDB(database.DBConfig{
		Host:     cfg.DBConfig.DBHost,
		Port:     cfg.DBConfig.DBPort,
		User:     cfg.DBConfig.DBUser,
		Password: cfg.DBConfig.DBPassword,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.DBSSLMode,
	})
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", zap.Error(err))
		}
	}()

	artifacts, err := artifact.NewBadgerStore(cfg.ArtifactDir)
	if err != nil {
		appLogger.Fatal("Failed to open artifact store", zap.String("dir", cfg.ArtifactDir), zap.Error(err))
	}
	defer func() {
		if err := artifacts.Close(); err != nil {
			appLogger.Error("Error closing artifact store", zap.Error(err))
		}
	}()

	eventRepository := postgres_event_repo.NewEventRepository(db, appLogger)
	generator := report.NewGenerator(eventRepository, artifacts, appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	key, err := generator.Generate(ctx)
	if err != nil {
		appLogger.Fatal("Failed to generate analytics report", zap.Error(err))
	}
	appLogger.Info("Analytics Reporter finished.", zap.String("report_key", key))
}
