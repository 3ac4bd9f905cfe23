package producer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/anubhawdwd/hrms-be/internal/events"
	"github.com/anubhawdwd/hrms-be/internal/messaging/kafka"
	kafkaMock "github.com/anubhawdwd/hrms-be/internal/messaging/kafka/mock"
	"github.com/anubhawdwd/hrms-be/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failFor map[string]error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err, ok := f.failFor[string(m.Key)]; ok {
			return err
		}
		f.written = append(f.written, m)
	}
	return nil
}

func outboxEvent(id, aggregateID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     "rid-1",
		AggregateType: events.AggregateLeaveRequest,
		AggregateID:   aggregateID,
		EventType:     events.EventLeaveApproved,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       []byte(`{"event_type":"leave_approved"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes batch and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 10).Return([]kafka.OutboxEvent{
			outboxEvent("o-1", "agg-1"),
			outboxEvent("o-2", "agg-2"),
		}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), 10)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		require.Len(t, writer.written, 2)
		assert.Equal(t, events.LeaveLifecycleTopic, writer.written[0].Topic)
		assert.Equal(t, "agg-1", string(writer.written[0].Key))
		assert.Equal(t, "request_id", writer.written[0].Headers[2].Key)
	})

	t.Run("failed publish is scheduled for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]error{"agg-1": errors.New("broker down")}}

		repo.EXPECT().ListPending(ctx, 10).Return([]kafka.OutboxEvent{
			outboxEvent("o-1", "agg-1"),
			outboxEvent("o-2", "agg-2"),
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "o-1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), 10)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("list error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 10).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 10)
		assert.EqualError(t, err, "db down")
	})
}
