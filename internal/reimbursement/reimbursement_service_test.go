package reimbursement_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-ess/internal/document"
	documentErrors "go-ess/internal/document/errors"
	documentMock "go-ess/internal/document/mock"
	"go-ess/internal/events"
	"go-ess/internal/messaging/kafka"
	kafkaMock "go-ess/internal/messaging/kafka/mock"
	"go-ess/internal/reimbursement"
	reimbursementErrors "go-ess/internal/reimbursement/errors"
	"go-ess/internal/shared/apperror"
	counterMock "go-ess/internal/shared/counter/mock"
	"go-ess/internal/wizard"
	wizardErrors "go-ess/internal/wizard/errors"

	"github.com/DATA-DOG/go-sqlmock"
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	store   *documentMock.MockStore
	counter *counterMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
	service reimbursement.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := documentMock.NewMockStore(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		store:   store,
		counter: counterRepo,
		outbox:  outboxRepo,
		service: reimbursement.NewService(db, store, counterRepo, outboxRepo, nil),
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validRequest() reimbursement.SubmitRequest {
	return reimbursement.SubmitRequest{
		Type:        reimbursement.TypeTravel,
		Amount:      decimal.NewFromInt(15000),
		ExpenseDate: "2026-03-02",
		Description: "Taxi to client site",
		ReceiptName: "taxi.jpg",
	}
}

func TestReimbursementService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(gomock.Any(), "u-1", gomock.Any()).Return(int64(7), nil)
		deps.store.EXPECT().WithTx(gomock.Any()).Return(deps.store)
		deps.store.EXPECT().
			Add(gomock.Any(), document.CollectionReimbursements, "u-1", gomock.Any()).
			DoAndReturn(func(ctx context.Context, collection, ownerID string, v any) (document.Document, error) {
				r := v.(reimbursement.Reimbursement)
				assert.Equal(t, "RB-000007", r.Reference)
				assert.Equal(t, reimbursement.StatusPending, r.Status)
				return document.Document{ID: "r-1", OwnerID: ownerID}, nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
			assert.Equal(t, events.ReimbursementSubmittedTopic, ev.Topic)
			assert.Equal(t, "r-1", ev.AggregateID)

			var payload events.ReimbursementSubmittedEvent
			require.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, "RB-000007", payload.Reference)
			return nil
		})

		resp, err := deps.service.Submit(ctx, "u-1", validRequest())
		require.NoError(t, err)
		assert.Equal(t, "r-1", resp.ID)
		assert.Equal(t, "₦15,000", resp.AmountDisplay)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid request never opens a tx", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := validRequest()
		req.Amount = decimal.Zero
		req.Type = "Fuel"

		_, err := deps.service.Submit(ctx, "u-1", req)

		var validationErr *apperror.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "amount")
		assert.Contains(t, validationErr.Fields, "type")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("store failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		deps.store.EXPECT().WithTx(gomock.Any()).Return(deps.store)
		deps.store.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(document.Document{}, errors.New("db down"))

		_, err := deps.service.Submit(ctx, "u-1", validRequest())
		assert.ErrorIs(t, err, reimbursementErrors.ErrSubmitFailed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func mustDoc(t *testing.T, id, owner string, r reimbursement.Reimbursement) document.Document {
	t.Helper()
	body, err := json.Marshal(r)
	require.NoError(t, err)
	return document.Document{ID: id, OwnerID: owner, Collection: document.CollectionReimbursements, Data: body}
}

func TestReimbursementService_ListFiltersInclusive(t *testing.T) {
	deps := setupServiceTest(t)

	deps.store.EXPECT().
		List(gomock.Any(), document.CollectionReimbursements, document.Filter{OwnerID: "u-1", OrderDesc: true}).
		Return([]document.Document{
			mustDoc(t, "a", "u-1", reimbursement.Reimbursement{ExpenseDate: "2026-03-31", Amount: decimal.NewFromInt(1)}),
			mustDoc(t, "b", "u-1", reimbursement.Reimbursement{ExpenseDate: "2026-03-01", Amount: decimal.NewFromInt(2)}),
			mustDoc(t, "c", "u-1", reimbursement.Reimbursement{ExpenseDate: "2026-02-28", Amount: decimal.NewFromInt(3)}),
			mustDoc(t, "d", "u-1", reimbursement.Reimbursement{ExpenseDate: "2026-04-01", Amount: decimal.NewFromInt(4)}),
		}, nil)

	items, err := deps.service.List(context.Background(), "u-1", reimbursement.ListRequest{From: "2026-03-01", To: "2026-03-31"})
	require.NoError(t, err)

	ids := []string{}
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestReimbursementService_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().GetByID(gomock.Any(), document.CollectionReimbursements, "r-1").
			Return(mustDoc(t, "r-1", "u-1", reimbursement.Reimbursement{Reference: "RB-000001", Amount: decimal.NewFromInt(500)}), nil)

		resp, err := deps.service.GetByID(context.Background(), "u-1", "r-1")
		require.NoError(t, err)
		assert.Equal(t, "RB-000001", resp.Reference)
	})

	t.Run("other owner", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().GetByID(gomock.Any(), document.CollectionReimbursements, "r-1").
			Return(mustDoc(t, "r-1", "u-2", reimbursement.Reimbursement{}), nil)

		_, err := deps.service.GetByID(context.Background(), "u-1", "r-1")
		assert.ErrorIs(t, err, reimbursementErrors.ErrReimbursementNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().GetByID(gomock.Any(), gomock.Any(), gomock.Any()).Return(document.Document{}, documentErrors.ErrNotFound)

		_, err := deps.service.GetByID(context.Background(), "u-1", "r-1")
		assert.ErrorIs(t, err, reimbursementErrors.ErrReimbursementNotFound)
	})
}

func TestReimbursementFlow(t *testing.T) {
	deps := setupServiceTest(t)
	flow := reimbursement.Flow(deps.service, nil)

	st := wizard.NewState(flow)
	assert.Equal(t, reimbursement.TypeTravel, st.Data["type"])
	assert.NotEmpty(t, st.Data["expenseDate"])
	assert.Equal(t, 4, flow.StepCount())

	_, err := wizard.Reduce(flow, st, wizard.Advance())
	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "amount")
	assert.Contains(t, validationErr.Fields, "description")

	for _, ev := range []wizard.Event{
		wizard.SetFields(wizard.Data{"amount": "15000", "description": "Taxi", "expenseDate": "2026-03-02"}),
		wizard.Advance(),
		wizard.SetField("receiptName", "taxi.jpg"),
		wizard.Advance(),
	} {
		st, err = wizard.Reduce(flow, st, ev)
		require.NoError(t, err)
	}
	assert.True(t, wizard.Project(flow, st).CanSubmit)
	assert.Equal(t, "Review Request", wizard.Project(flow, st).Title)

	expectTx(t, deps.sqlMock, false)
	deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
	deps.counter.EXPECT().GetNextValue(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("boom"))

	failed, err := wizard.NewRunner().Run(context.Background(), flow, st, wizard.SubmitRequest{UserID: "u-1"},
		func(ctx context.Context, s wizard.State) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, wizardErrors.ErrSubmissionFailed.Message, failed.Error)
	assert.Equal(t, "Review Request", wizard.Project(flow, failed).Title)
}
