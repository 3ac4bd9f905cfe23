package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/anubhawdwd/hrms-be/internal/events"
	"github.com/anubhawdwd/hrms-be/internal/messaging/kafka/consumer"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeHandler struct {
	got []events.LeaveLifecycleEvent
	err error
}

func (f *fakeHandler) ApplyLeaveEvent(ctx context.Context, event events.LeaveLifecycleEvent) error {
	f.got = append(f.got, event)
	return f.err
}

func message(t *testing.T, event events.LeaveLifecycleEvent) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return kafkago.Message{Topic: events.LeaveLifecycleTopic, Value: payload}
}

func TestHandleMessage(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()
	evt := events.LeaveLifecycleEvent{
		EventType:      events.EventLeaveApproved,
		LeaveRequestID: "8f0e4c1a-6a55-4a57-9a55-1f2b3c4d5e6f",
		EmployeeID:     "2b1a0c9d-8e7f-4a6b-9c5d-4e3f2a1b0c9d",
		DurationType:   "FULL_DAY",
		FromDate:       "2024-01-05",
		ToDate:         "2024-01-08",
	}

	t.Run("applied event is committed", func(t *testing.T) {
		h := &fakeHandler{}
		assert.True(t, consumer.HandleMessage(ctx, message(t, evt), h, log))
		require.Len(t, h.got, 1)
		assert.Equal(t, "2024-01-08", h.got[0].ToDate)
	})

	t.Run("poison message is committed without calling handler", func(t *testing.T) {
		h := &fakeHandler{}
		assert.True(t, consumer.HandleMessage(ctx, kafkago.Message{Value: []byte("{not json")}, h, log))
		assert.Empty(t, h.got)
	})

	t.Run("duplicate apply is committed", func(t *testing.T) {
		h := &fakeHandler{err: &pgconn.PgError{Code: "23505"}}
		assert.True(t, consumer.HandleMessage(ctx, message(t, evt), h, log))
	})

	t.Run("transient failure is retried", func(t *testing.T) {
		h := &fakeHandler{err: errors.New("connection reset")}
		assert.False(t, consumer.HandleMessage(ctx, message(t, evt), h, log))
	})
}

type fakeReader struct {
	msgs      []kafkago.Message
	committed int
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.msgs) == 0 {
		f.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	return m, nil
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.committed += len(msgs)
	return nil
}

func TestConsumeLeaveLifecycle_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evt := events.LeaveLifecycleEvent{EventType: events.EventLeaveCancelled}
	reader := &fakeReader{msgs: []kafkago.Message{message(t, evt), message(t, evt)}, cancel: cancel}
	h := &fakeHandler{}

	consumer.ConsumeLeaveLifecycle(ctx, reader, h, zap.NewNop())

	assert.Len(t, h.got, 2)
	assert.Equal(t, 2, reader.committed)
}
