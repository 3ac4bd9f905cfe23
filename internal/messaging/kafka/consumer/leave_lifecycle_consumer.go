package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/anubhawdwd/hrms-be/internal/events"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type LeaveEventHandler interface {
	ApplyLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) error
}

func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	handler LeaveEventHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		if !HandleMessage(ctx, msg, handler, log) {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
		}
	}
}

// HandleMessage applies one message and reports whether its offset may be committed.
// Poison messages are committed so they never block the partition.
func HandleMessage(ctx context.Context, msg kafkago.Message, handler LeaveEventHandler, log *zap.Logger) bool {
	var event events.LeaveLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave lifecycle event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return true
	}

	if err := handler.ApplyLeaveEvent(ctx, event); err != nil {
		if isUniqueViolation(err) {
			log.Warn("leave lifecycle event already applied, skipping",
				zap.String("event_type", event.EventType),
				zap.String("leave_request_id", event.LeaveRequestID),
			)
			return true
		}

		log.Error("apply leave lifecycle event failed",
			zap.String("event_type", event.EventType),
			zap.String("leave_request_id", event.LeaveRequestID),
			zap.String("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return false
	}

	log.Info("leave lifecycle event applied",
		zap.String("event_type", event.EventType),
		zap.String("leave_request_id", event.LeaveRequestID),
		zap.String("employee_id", event.EmployeeID),
	)
	return true
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
