package taxcalc_test

import (
	"context"
	"errors"
	"testing"

	"go-ess/internal/document"
	"go-ess/internal/document/mock"
	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/money"
	"go-ess/internal/taxcalc"
	taxErrors "go-ess/internal/taxcalc/errors"
	"go-ess/internal/wizard"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	store   *mock.MockStore
	service taxcalc.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	return &serviceDeps{
		store:   store,
		service: taxcalc.NewService(store, nil),
	}
}

func TestService_EstimatePAYE(t *testing.T) {
	deps := setupServiceTest(t)

	resp, err := deps.service.EstimatePAYE(taxcalc.PAYERequest{
		MonthlySalary: decimal.NewFromInt(300000),
		AnnualRent:    decimal.NewFromInt(240000),
	})
	require.NoError(t, err)
	assert.Equal(t, 66000.0, resp.Savings)
	assert.Equal(t, "₦66,000", resp.Display.Savings)
	assert.Equal(t, "I'm saving ₦66,000 in 2026 tax!", resp.ShareMessage)

	_, err = deps.service.EstimatePAYE(taxcalc.PAYERequest{})
	assert.ErrorIs(t, err, taxErrors.ErrNoIncome)

	_, err = deps.service.EstimatePAYE(taxcalc.PAYERequest{MonthlySalary: decimal.NewFromInt(-1)})
	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "monthlySalary")
}

func TestService_SaveClaim(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().
			Add(gomock.Any(), document.CollectionRentReliefClaim, "u-1", gomock.Any()).
			DoAndReturn(func(ctx context.Context, collection, ownerID string, v any) (document.Document, error) {
				claim := v.(taxcalc.Claim)
				assert.True(t, claim.Deduction.Equal(decimal.NewFromInt(240000)))
				assert.Empty(t, claim.ID)
				return document.Document{ID: "c-1"}, nil
			})

		resp, err := deps.service.SaveClaim(context.Background(), "u-1", taxcalc.ClaimInput{
			FileName:     "receipt.pdf",
			LandlordName: "Mr. Bello",
			PaymentDate:  "2025-11-15",
			AnnualRent:   decimal.NewFromInt(1200000),
		})
		require.NoError(t, err)
		assert.Equal(t, "c-1", resp.ID)
		assert.Equal(t, 48000.0, resp.TaxSavings)
	})

	t.Run("store failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(document.Document{}, errors.New("db down"))

		_, err := deps.service.SaveClaim(context.Background(), "u-1", taxcalc.ClaimInput{AnnualRent: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, taxErrors.ErrSaveClaim)
	})
}

func TestService_ListClaims(t *testing.T) {
	deps := setupServiceTest(t)

	body, err := json.Marshal(taxcalc.Claim{UserID: "u-1", LandlordName: "Mr. Bello", Deduction: decimal.NewFromInt(240000)})
	require.NoError(t, err)

	deps.store.EXPECT().
		List(gomock.Any(), document.CollectionRentReliefClaim, document.Filter{OwnerID: "u-1", OrderDesc: true}).
		Return([]document.Document{{ID: "c-1", Data: body}, {ID: "bad", Data: []byte("{")}}, nil)

	claims, err := deps.service.ListClaims(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "c-1", claims[0].ID)
	assert.Equal(t, "Mr. Bello", claims[0].LandlordName)
}

func TestPAYEFlow(t *testing.T) {
	f := money.NewFormatter(money.DefaultLocale, money.DefaultCurrency)
	flow := taxcalc.PAYEFlow(f)
	st := wizard.NewState(flow)

	v := wizard.Project(flow, st)
	assert.Equal(t, "Salary Preview", v.Title)
	assert.True(t, v.CanAdvance)
	assert.Equal(t, "₦66,000", v.Derived["savings"])

	st, err := wizard.Reduce(flow, st, wizard.SetFields(wizard.Data{"monthlySalary": "", "freelanceIncome": "abc"}))
	require.NoError(t, err)
	assert.Equal(t, "", st.Data["freelanceIncome"])

	_, err = wizard.Reduce(flow, st, wizard.Advance())
	var validationErr *apperror.ValidationError
	require.ErrorAs(t, err, &validationErr)

	st, err = wizard.Reduce(flow, st, wizard.SetField("freelanceIncome", "500,000"))
	require.NoError(t, err)
	st, err = wizard.Reduce(flow, st, wizard.Advance())
	require.NoError(t, err)

	v = wizard.Project(flow, st)
	assert.Equal(t, "2026 Salary Result", v.Title)
	assert.Equal(t, "true", v.Derived["taxFree"])
	assert.False(t, v.CanSubmit)
	assert.Equal(t, 2, v.StepCount)
}

func TestRentReliefFlow(t *testing.T) {
	deps := setupServiceTest(t)
	f := money.NewFormatter(money.DefaultLocale, money.DefaultCurrency)
	flow := taxcalc.RentReliefFlow(deps.service, f)

	st := wizard.NewState(flow)
	for _, ev := range []wizard.Event{
		wizard.SetField("fileName", "receipt.pdf"),
		wizard.Advance(),
		wizard.SetFields(wizard.Data{"annualRent": "₦1,200,000", "landlordName": "Mr. Bello", "paymentDate": "2025-11-15"}),
	} {
		var err error
		st, err = wizard.Reduce(flow, st, ev)
		require.NoError(t, err)
	}
	assert.Equal(t, "1200000", st.Data["annualRent"])

	v := wizard.Project(flow, st)
	assert.Equal(t, "Confirm Details", v.Title)
	assert.Equal(t, "₦240,000", v.Derived["deduction"])
	assert.True(t, v.CanSubmit)

	deps.store.EXPECT().Add(gomock.Any(), document.CollectionRentReliefClaim, "u-1", gomock.Any()).
		Return(document.Document{ID: "c-9"}, nil)

	saved := 0
	persist := func(ctx context.Context, s wizard.State) error { saved++; return nil }
	st, err := wizard.NewRunner().Run(context.Background(), flow, st, wizard.SubmitRequest{UserID: "u-1", SessionID: "s-1"}, persist)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.Equal(t, "c-9", st.Data["claimId"])

	v = wizard.Project(flow, st)
	assert.Equal(t, "Lock In Your Savings", v.Title)
	assert.True(t, v.CanRetreat)

	st, err = wizard.Reduce(flow, st, wizard.Retreat())
	require.NoError(t, err)
	assert.Equal(t, "Confirm Details", wizard.Project(flow, st).Title)

	st, err = wizard.Reduce(flow, st, wizard.SetField("landlordName", "Mrs. Bello"))
	require.NoError(t, err)

	deps.store.EXPECT().Update(gomock.Any(), document.CollectionRentReliefClaim, "c-9", gomock.Any()).
		DoAndReturn(func(ctx context.Context, collection, id string, v any) error {
			claim := v.(taxcalc.Claim)
			assert.Equal(t, "Mrs. Bello", claim.LandlordName)
			return nil
		})

	st, err = wizard.NewRunner().Run(context.Background(), flow, st, wizard.SubmitRequest{UserID: "u-1", SessionID: "s-1"}, persist)
	require.NoError(t, err)
	assert.Equal(t, "c-9", st.Data["claimId"])
	assert.Equal(t, "Lock In Your Savings", wizard.Project(flow, st).Title)

	st, err = wizard.Reduce(flow, st, wizard.Choose(taxcalc.OutcomeSkipped))
	require.NoError(t, err)
	assert.Equal(t, "Deduction Saved", wizard.Project(flow, st).Title)
}
