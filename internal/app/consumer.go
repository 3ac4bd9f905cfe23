package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anubhawdwd/hrms-be/internal/attendance"
	"github.com/anubhawdwd/hrms-be/internal/company"
	"github.com/anubhawdwd/hrms-be/internal/config"
	"github.com/anubhawdwd/hrms-be/internal/employee"
	"github.com/anubhawdwd/hrms-be/internal/events"
	"github.com/anubhawdwd/hrms-be/internal/leave"
	"github.com/anubhawdwd/hrms-be/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer keeps attendance days in step with approved and cancelled
// full-day leave.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

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

	attendanceRepo := attendance.NewRepository(db)
	attendanceService := attendance.NewService(
		db,
		attendanceRepo,
		employee.NewRepository(db),
		leave.NewRepository(db),
		attendance.NewOfficeCache(attendanceRepo, nil, cfg.Attendance.OfficeCacheTTL, logger),
		company.NewService(company.NewRepository(db), logger),
		logger,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.LeaveLifecycleTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	consumer.ConsumeLeaveLifecycle(ctx, reader, attendanceService, logger)

	logger.Info("consumer shut down")
	return nil
}
