package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anubhawdwd/hrms-be/internal/config"
	"github.com/anubhawdwd/hrms-be/internal/messaging/kafka"
	"github.com/anubhawdwd/hrms-be/internal/messaging/kafka/producer"
	"github.com/anubhawdwd/hrms-be/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays committed leave lifecycle events from the outbox to kafka.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	db, err := connectDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(db)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.Outbox.PollInterval, cfg.Outbox.BatchSize)

	logger.Info("worker shut down")
	return nil
}
