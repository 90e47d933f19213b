package reimbursement

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-ess/internal/document"
	documentErrors "go-ess/internal/document/errors"
	"go-ess/internal/events"
	"go-ess/internal/messaging/kafka"
	reimbursementErrors "go-ess/internal/reimbursement/errors"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/contextutil"
	"go-ess/internal/shared/counter"
	"go-ess/internal/shared/money"

	"go.uber.org/zap"
)

const counterType = "reimbursement_reference"

type Service interface {
	Submit(ctx context.Context, userID string, req SubmitRequest) (ReimbursementResponse, error)
	List(ctx context.Context, userID string, req ListRequest) ([]ReimbursementResponse, error)
	GetByID(ctx context.Context, userID, id string) (ReimbursementResponse, error)
}

type service struct {
	db        *sql.DB
	store     document.Store
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	formatter *money.Formatter
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	store document.Store,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	formatter *money.Formatter,
	logger ...*zap.Logger,
) Service {
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
		counter:   counterRepo,
		outbox:    outboxRepo,
		formatter: formatter,
		now:       time.Now,
		logger:    l.Named("reimbursement.service"),
	}
}

func validateSubmit(req SubmitRequest) error {
	fields := map[string]string{}
	if !validType(req.Type) {
		fields["type"] = "Type is invalid"
	}
	if !req.Amount.IsPositive() {
		fields["amount"] = "Amount must be greater than 0"
	}
	if _, err := time.Parse(time.DateOnly, req.ExpenseDate); err != nil {
		fields["expenseDate"] = "Expense Date must be a valid date"
	}
	if strings.TrimSpace(req.Description) == "" {
		fields["description"] = "Description is required"
	}
	if strings.TrimSpace(req.ReceiptName) == "" {
		fields["receiptName"] = "Receipt is required"
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// Submit stores the request, its reference and the outbox event in one
// transaction.
func (s *service) Submit(ctx context.Context, userID string, req SubmitRequest) (ReimbursementResponse, error) {
	log := s.log(ctx)
	if err := validateSubmit(req); err != nil {
		return ReimbursementResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit reimbursement begin tx failed", zap.Error(err))
		return ReimbursementResponse{}, reimbursementErrors.ErrSubmitFailed
	}
	defer tx.Rollback()

	seq, err := s.counter.WithTx(tx).GetNextValue(ctx, userID, counterType)
	if err != nil {
		log.Error("submit reimbursement reference failed", zap.Error(err))
		return ReimbursementResponse{}, reimbursementErrors.ErrSubmitFailed
	}

	r := Reimbursement{
		Reference:   counter.Reference(ReferencePrefix, seq),
		UserID:      userID,
		Type:        req.Type,
		Amount:      req.Amount,
		ExpenseDate: req.ExpenseDate,
		Description: strings.TrimSpace(req.Description),
		ReceiptName: req.ReceiptName,
		Status:      StatusPending,
		Date:        s.now().UTC(),
	}

	doc, err := s.store.WithTx(tx).Add(ctx, document.CollectionReimbursements, userID, r)
	if err != nil {
		log.Error("submit reimbursement persist failed", zap.Error(err))
		return ReimbursementResponse{}, reimbursementErrors.ErrSubmitFailed
	}
	r.ID = doc.ID

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			events.ReimbursementSubmittedTopic,
			events.ReimbursementSubmittedType,
			"reimbursement",
			r.ID,
			contextutil.GetRequestID(ctx),
			events.ReimbursementSubmittedEvent{
				EventType:       events.ReimbursementSubmittedType,
				ReimbursementID: r.ID,
				Reference:       r.Reference,
				UserID:          userID,
				Type:            r.Type,
				Amount:          r.Amount,
				OccurredAt:      r.Date,
			},
		)
		if err == nil {
			err = s.outbox.WithTx(tx).Create(ctx, event)
		}
		if err != nil {
			log.Error("submit reimbursement outbox persist failed", zap.String("reimbursement_id", r.ID), zap.Error(err))
			return ReimbursementResponse{}, reimbursementErrors.ErrSubmitFailed
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("submit reimbursement commit failed", zap.Error(err))
		return ReimbursementResponse{}, reimbursementErrors.ErrSubmitFailed
	}

	log.Info("reimbursement submitted",
		zap.String("reimbursement_id", r.ID),
		zap.String("reference", r.Reference),
	)
	return mapToResponse(r, s.formatter), nil
}

// List returns the user's requests, newest first, whose expense date lies
// within [From, To]. Either bound may be empty.
func (s *service) List(ctx context.Context, userID string, req ListRequest) ([]ReimbursementResponse, error) {
	docs, err := s.store.List(ctx, document.CollectionReimbursements, document.Filter{OwnerID: userID, OrderDesc: true})
	if err != nil {
		s.log(ctx).Error("list reimbursements failed", zap.Error(err))
		return nil, err
	}

	out := make([]ReimbursementResponse, 0, len(docs))
	for _, doc := range docs {
		r, err := document.Decode[Reimbursement](doc)
		if err != nil {
			s.log(ctx).Warn("skip malformed reimbursement", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		if req.From != "" && r.ExpenseDate < req.From {
			continue
		}
		if req.To != "" && r.ExpenseDate > req.To {
			continue
		}
		r.ID = doc.ID
		out = append(out, mapToResponse(r, s.formatter))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (ReimbursementResponse, error) {
	doc, err := s.store.GetByID(ctx, document.CollectionReimbursements, id)
	if errors.Is(err, documentErrors.ErrNotFound) {
		return ReimbursementResponse{}, reimbursementErrors.ErrReimbursementNotFound
	}
	if err != nil {
		return ReimbursementResponse{}, err
	}
	if doc.OwnerID != userID {
		return ReimbursementResponse{}, reimbursementErrors.ErrReimbursementNotFound
	}

	r, err := document.Decode[Reimbursement](doc)
	if err != nil {
		return ReimbursementResponse{}, err
	}
	r.ID = doc.ID
	return mapToResponse(r, s.formatter), nil
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}
