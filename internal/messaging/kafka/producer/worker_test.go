package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-ess/internal/messaging/kafka"
	kafkaMock "go-ess/internal/messaging/kafka/mock"
	"go-ess/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	fail     map[string]bool
	messages []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if w.fail[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func TestProcessPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	events := []kafka.OutboxEvent{
		{ID: "e-1", AggregateID: "agg-ok", EventType: "x", Topic: "t", Payload: []byte(`{}`)},
		{ID: "e-2", AggregateID: "agg-bad", EventType: "x", Topic: "t", Payload: []byte(`{}`)},
	}

	repo.EXPECT().ListPending(ctx, 50).Return(events, nil)
	repo.EXPECT().MarkSent(ctx, "e-1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "e-2", "broker unavailable").Return(nil)

	writer := &fakeWriter{fail: map[string]bool{"agg-bad": true}}
	sent, err := producer.ProcessPending(ctx, repo, writer, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, writer.messages, 1)
	assert.Equal(t, "t", writer.messages[0].Topic)
	assert.Equal(t, "event_type", writer.messages[0].Headers[0].Key)
}

func TestProcessPending_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	repo.EXPECT().ListPending(gomock.Any(), 50).Return(nil, errors.New("db down"))

	sent, err := producer.ProcessPending(context.Background(), repo, &fakeWriter{}, zap.NewNop())

	assert.EqualError(t, err, "db down")
	assert.Zero(t, sent)
}
