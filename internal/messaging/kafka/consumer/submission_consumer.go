package consumer

import (
	"context"
	"errors"
	"fmt"

	"go-ess/internal/events"
	"go-ess/internal/notification"
	"go-ess/internal/shared/contextutil"
	"go-ess/internal/shared/money"

	json "github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// SubmissionTopics lists the topics ConsumeSubmissionEvents understands.
var SubmissionTopics = []string{
	events.ReimbursementSubmittedTopic,
	events.SalaryAdvanceRequestedTopic,
}

type notice struct {
	key    string
	userID string
	input  notification.CreateInput
}

// ConsumeSubmissionEvents turns reimbursement and salary advance events
// into user notifications. It returns when ctx is cancelled.
func ConsumeSubmissionEvents(
	ctx context.Context,
	reader MessageReader,
	notificationService notification.Service,
	formatter *money.Formatter,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.submissions")
	log.Info("submission consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("submission consumer stopped")
				return
			}
			log.Error("fetch submission message failed", zap.Error(err))
			continue
		}

		n, err := decodeNotice(msg, formatter)
		if err != nil {
			log.Error("decode submission event failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		rid := headerValue(msg, "request_id")
		msgLog := log.With(zap.String("request_id", rid))
		msgCtx := contextutil.WithLogger(contextutil.WithRequestID(ctx, rid), msgLog)

		created, err := notificationService.CreateOnce(msgCtx, n.userID, n.key, n.input)
		if err != nil {
			msgLog.Error("create notification failed",
				zap.String("key", n.key),
				zap.String("user_id", n.userID),
				zap.Error(err),
			)
			continue
		}
		if !created {
			msgLog.Warn("notification already exists for event, skipping", zap.String("key", n.key))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit submission message failed", zap.Error(err))
			continue
		}

		if created {
			msgLog.Info("notification created from event",
				zap.String("key", n.key),
				zap.String("user_id", n.userID),
			)
		}
	}
}

func decodeNotice(msg kafkago.Message, f *money.Formatter) (notice, error) {
	switch msg.Topic {
	case events.ReimbursementSubmittedTopic:
		var event events.ReimbursementSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return notice{}, err
		}
		if event.UserID == "" || event.ReimbursementID == "" {
			return notice{}, errors.New("reimbursement event missing ids")
		}
		return notice{
			key:    events.ReimbursementSubmittedType + ":" + event.ReimbursementID,
			userID: event.UserID,
			input: notification.CreateInput{
				Icon:  "receipt_long",
				Title: fmt.Sprintf("Reimbursement %s for %s submitted", event.Reference, f.Format(event.Amount, money.Cents)),
			},
		}, nil

	case events.SalaryAdvanceRequestedTopic:
		var event events.SalaryAdvanceRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return notice{}, err
		}
		if event.UserID == "" || event.AdvanceID == "" {
			return notice{}, errors.New("salary advance event missing ids")
		}
		return notice{
			key:    events.SalaryAdvanceRequestedType + ":" + event.AdvanceID,
			userID: event.UserID,
			input: notification.CreateInput{
				Icon:  "payments",
				Title: fmt.Sprintf("Salary advance of %s requested", f.Format(event.Amount, money.Cents)),
			},
		}, nil
	}

	return notice{}, fmt.Errorf("unexpected topic %q", msg.Topic)
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
