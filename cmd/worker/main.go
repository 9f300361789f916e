package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/app/fulfillment"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/artifact"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/config"
	kafka_handler "github.com/alexisfrangulefrei/projetsiteecommerce/internal/handler/kafka"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/infrastructure/database"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/infrastructure/kafka"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/inventory"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/metrics"
	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/notifier"
	postgres_archive_repo "github.com/alexisfrangulefrei/projetsiteecommerce/internal/repository/archive_repo/postgres"
	postgres_order_repo "github.com/alexisfrangulefrei/projetsiteecommerce/internal/repository/order_repo/postgres"
)

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
	appLogger.Info("Fulfillment Worker starting...")

	appLogger.Info("Waiting for database to be available...")
	dbConfig := database.DBConfig{
		Host:     cfg.DBConfig.DBHost,
		Port:     cfg.DBConfig.DBPort,
		User:     cfg.DBConfig.DBUser,
		Password: cfg.DBConfig.DBPassword,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.DBSSLMode,
	}

	var db *sql.DB
	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = database.NewPostgresDB(dbConfig)
		if err == nil {
			appLogger.Info("Successfully connected to PostgreSQL database!")
			break
		}
		appLogger.Warn(fmt.Sprintf("Failed to connect to database (attempt %d/%d): %v. Retrying in %s...", i+1, maxRetries, err, retryDelay))
		time.Sleep(retryDelay)
	}

	if db == nil {
		appLogger.Fatal("Could not connect to database after multiple retries. Exiting.", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", zap.Error(err))
		} else {
			appLogger.Info("Database connection closed.")
		}
	}()

	appLogger.Info("Running database migrations...")
	migrateDSN := "postgres://" + cfg.GetDBMigrationConnectionString()
	m, err := migrate.New(cfg.MigrationsPath, migrateDSN)
	if err != nil {
		appLogger.Fatal("Failed to create migrate instance", zap.Error(err))
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		appLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	appLogger.Info("Database migrations completed successfully (or no new migrations).")

	artifacts, err := artifact.NewBadgerStore(cfg.ArtifactDir)
	if err != nil {
		appLogger.Fatal("Failed to open artifact store", zap.String("dir", cfg.ArtifactDir), zap.Error(err))
	}
	defer func() {
		if err := artifacts.Close(); err != nil {
			appLogger.Error("Error closing artifact store", zap.Error(err))
		} else {
			appLogger.Info("Artifact store closed.")
		}
	}()
	appLogger.Info("Artifact store opened.", zap.String("dir", cfg.ArtifactDir))

	kafkaProducer, err := kafka.NewProducer(cfg.GetKafkaBrokers(), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create Kafka producer", zap.Error(err))
	}
	defer func() {
		if err := kafkaProducer.Close(); err != nil {
			appLogger.Error("Error closing Kafka producer", zap.Error(err))
		}
	}()
	appLogger.Info("Kafka producer created successfully.")

	batchConsumer := kafka.NewBatchConsumer(
		cfg.GetKafkaBrokers(),
		cfg.KafkaIntakeTopic,
		cfg.KafkaConsumerGroup,
		cfg.BatchSize,
		cfg.BatchMaxWait,
		appLogger,
	)
	defer func() {
		if err := batchConsumer.Close(); err != nil {
			appLogger.Error("Error closing Kafka consumer", zap.Error(err))
		}
	}()

	var mailer notifier.Notifier
	if cfg.SMTPHost != "" {
		mailer = notifier.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, appLogger)
		appLogger.Info("SMTP notifier configured", zap.String("host", cfg.SMTPHost))
	} else {
		mailer = notifier.NewLogNotifier(appLogger)
		appLogger.Warn("No SMTP host configured, customer mails are logged only")
	}

	orderRepository := postgres_order_repo.NewOrderRepository(db, appLogger)
	archiveRepository := postgres_archive_repo.NewArchiveRepository(db, appLogger)
	stockChecker := inventory.NewClient(cfg.OracleCatalogURL, cfg.OracleTimeout, appLogger)
	registry := metrics.NewRegistry()

	service := fulfillment.NewService(
		orderRepository,
		archiveRepository,
		artifacts,
		stockChecker,
		mailer,
		registry,
		cfg.Workers,
		appLogger,
	)
	reporter := fulfillment.NewReporter(appLogger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Metrics server failed", zap.Error(err))
		}
	}()
	appLogger.Info("Metrics server started", zap.String("address", cfg.MetricsAddr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	intakeConsumer := kafka_handler.NewIntakeConsumer(
		batchConsumer,
		kafkaProducer,
		cfg.KafkaIntakeTopic,
		service,
		reporter,
		registry,
		appLogger,
	)
	appLogger.Info("Intake consumer started", zap.String("topic", cfg.KafkaIntakeTopic))

	if err := intakeConsumer.Run(ctx); err != nil {
		appLogger.Error("Intake consumer stopped with error", zap.Error(err))
	}

	appLogger.Info("Shutting down Fulfillment Worker...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Metrics server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Fulfillment Worker stopped.")
}
