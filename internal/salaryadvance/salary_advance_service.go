package salaryadvance

import (
	"context"
	"database/sql"
	"time"

	"go-ess/internal/document"
	"go-ess/internal/events"
	"go-ess/internal/messaging/kafka"
	salaryAdvanceErrors "go-ess/internal/salaryadvance/errors"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/contextutil"
	"go-ess/internal/shared/money"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Quote(amount decimal.Decimal) QuoteResponse
	Request(ctx context.Context, userID string, amount decimal.Decimal) (AdvanceResponse, error)
	List(ctx context.Context, userID string) ([]AdvanceResponse, error)
}

type service struct {
	db        *sql.DB
	store     document.Store
	outbox    kafka.OutboxRepository
	formatter *money.Formatter
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(db *sql.DB, store document.Store, outboxRepo kafka.OutboxRepository, formatter *money.Formatter, logger ...*zap.Logger) Service {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if formatter == nil {
		formatter = money.NewFormatter(money.DefaultLocale, money.DefaultCurrency)
	}
	return &service{
		db:        db,
		store:     store,
		outbox:    outboxRepo,
		formatter: formatter,
		now:       time.Now,
		logger:    l.Named("salaryadvance.service"),
	}
}

func (s *service) Quote(amount decimal.Decimal) QuoteResponse {
	return mapToQuoteResponse(NewQuote(amount), s.formatter)
}

func (s *service) Request(ctx context.Context, userID string, amount decimal.Decimal) (AdvanceResponse, error) {
	log := s.log(ctx)
	if !amount.IsPositive() {
		return AdvanceResponse{}, apperror.FieldError("amount", "Amount must be greater than 0")
	}
	q := NewQuote(amount)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("request advance begin tx failed", zap.Error(err))
		return AdvanceResponse{}, salaryAdvanceErrors.ErrRequestFailed
	}
	defer tx.Rollback()

	advance := Advance{
		UserID:         userID,
		Amount:         q.Amount,
		ProcessingFee:  q.ProcessingFee,
		TotalRepayment: q.TotalRepayment,
		Status:         StatusPending,
		RequestedAt:    s.now().UTC(),
	}

	doc, err := s.store.WithTx(tx).Add(ctx, document.CollectionSalaryAdvances, userID, advance)
	if err != nil {
		log.Error("request advance persist failed", zap.Error(err))
		return AdvanceResponse{}, salaryAdvanceErrors.ErrRequestFailed
	}
	advance.ID = doc.ID

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			events.SalaryAdvanceRequestedTopic,
			events.SalaryAdvanceRequestedType,
			"salary_advance",
			advance.ID,
			contextutil.GetRequestID(ctx),
			events.SalaryAdvanceRequestedEvent{
				EventType:      events.SalaryAdvanceRequestedType,
				AdvanceID:      advance.ID,
				UserID:         userID,
				Amount:         advance.Amount,
				ProcessingFee:  advance.ProcessingFee,
				TotalRepayment: advance.TotalRepayment,
				OccurredAt:     advance.RequestedAt,
			},
		)
		if err == nil {
			err = s.outbox.WithTx(tx).Create(ctx, event)
		}
		if err != nil {
			log.Error("request advance outbox persist failed", zap.String("advance_id", advance.ID), zap.Error(err))
			return AdvanceResponse{}, salaryAdvanceErrors.ErrRequestFailed
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("request advance commit failed", zap.Error(err))
		return AdvanceResponse{}, salaryAdvanceErrors.ErrRequestFailed
	}

	log.Info("salary advance requested",
		zap.String("advance_id", advance.ID),
		zap.String("amount", advance.Amount.String()),
	)
	return mapToAdvanceResponse(advance), nil
}

func (s *service) List(ctx context.Context, userID string) ([]AdvanceResponse, error) {
	docs, err := s.store.List(ctx, document.CollectionSalaryAdvances, document.Filter{OwnerID: userID, OrderDesc: true})
	if err != nil {
		return nil, err
	}

	advances, err := document.DecodeAll[Advance](docs)
	if err != nil {
		return nil, err
	}

	out := make([]AdvanceResponse, 0, len(advances))
	for i, a := range advances {
		a.ID = docs[i].ID
		out = append(out, mapToAdvanceResponse(a))
	}
	return out, nil
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}
