package consumer_test

import (
	"context"
	"errors"
	"testing"

	"go-ess/internal/events"
	"go-ess/internal/messaging/kafka/consumer"
	"go-ess/internal/notification"
	"go-ess/internal/shared/money"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	pending   []kafkago.Message
	committed []kafkago.Message
	stop      context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.pending) == 0 {
		r.stop()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.pending[0]
	r.pending = r.pending[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

type createCall struct {
	userID string
	key    string
	input  notification.CreateInput
}

type fakeNotifications struct {
	notification.Service
	seen  map[string]bool
	calls []createCall
	err   error
}

func (f *fakeNotifications) CreateOnce(_ context.Context, userID, key string, in notification.CreateInput) (bool, error) {
	f.calls = append(f.calls, createCall{userID: userID, key: key, input: in})
	if f.err != nil {
		return false, f.err
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func run(t *testing.T, svc *fakeNotifications, msgs ...kafkago.Message) *fakeReader {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	reader := &fakeReader{pending: msgs, stop: cancel}
	consumer.ConsumeSubmissionEvents(ctx, reader, svc, money.NewFormatter(money.DefaultLocale, money.DefaultCurrency), zap.NewNop())
	return reader
}

func TestConsumeSubmissionEvents(t *testing.T) {
	svc := &fakeNotifications{seen: map[string]bool{}}
	reimbursement := kafkago.Message{
		Topic:  events.ReimbursementSubmittedTopic,
		Offset: 1,
		Value:  []byte(`{"event_type":"reimbursement_submitted","reimbursement_id":"r-1","reference":"RB-0001","user_id":"u-1","amount":"12500"}`),
	}
	advance := kafkago.Message{
		Topic:  events.SalaryAdvanceRequestedTopic,
		Offset: 2,
		Value:  []byte(`{"event_type":"salary_advance_requested","advance_id":"a-1","user_id":"u-1","amount":"50000"}`),
	}

	reader := run(t, svc, reimbursement, advance, reimbursement)

	require.Len(t, svc.calls, 3)
	assert.Equal(t, "reimbursement_submitted:r-1", svc.calls[0].key)
	assert.Equal(t, "Reimbursement RB-0001 for ₦12,500.00 submitted", svc.calls[0].input.Title)
	assert.Equal(t, "u-1", svc.calls[1].userID)
	assert.Equal(t, "Salary advance of ₦50,000.00 requested", svc.calls[1].input.Title)
	// redelivery is skipped but still committed
	assert.Len(t, reader.committed, 3)
}

func TestConsumeSubmissionEvents_MalformedIsCommitted(t *testing.T) {
	svc := &fakeNotifications{seen: map[string]bool{}}
	reader := run(t, svc,
		kafkago.Message{Topic: events.ReimbursementSubmittedTopic, Value: []byte("{")},
		kafkago.Message{Topic: events.SalaryAdvanceRequestedTopic, Value: []byte(`{"amount":"1"}`)},
		kafkago.Message{Topic: "unknown", Value: []byte(`{}`)},
	)

	assert.Empty(t, svc.calls)
	assert.Len(t, reader.committed, 3)
}

func TestConsumeSubmissionEvents_StoreFailureNotCommitted(t *testing.T) {
	svc := &fakeNotifications{seen: map[string]bool{}, err: errors.New("db down")}
	reader := run(t, svc, kafkago.Message{
		Topic: events.SalaryAdvanceRequestedTopic,
		Value: []byte(`{"advance_id":"a-1","user_id":"u-1","amount":"100"}`),
	})

	assert.Len(t, svc.calls, 1)
	assert.Empty(t, reader.committed)
}
