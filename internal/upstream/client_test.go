package upstream_test

import (
	"context"
	"net"
	"testing"
	"time"

	"go-ess/internal/shared/config"
	"go-ess/internal/shared/contextutil"
	"go-ess/internal/upstream"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

func newTestClient(t *testing.T, handler fasthttp.RequestHandler) *upstream.Client {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	go func() {
		_ = fasthttp.Serve(ln, handler)
	}()
	t.Cleanup(func() { _ = ln.Close() })

	return upstream.NewClient(
		config.UpstreamConfig{BaseURL: "http://upstream.test/", Timeout: 2 * time.Second},
		upstream.WithDial(func(string) (net.Conn, error) { return ln.Dial() }),
	)
}

func TestClient_Payslip(t *testing.T) {
	var gotAuth, gotPath string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotAuth = string(ctx.Request.Header.Peek("Authorization"))
		gotPath = string(ctx.Path())
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"data":{
			"id":"ps-1",
			"salary":300000,
			"proratedSalary":null,
			"bonuses":[{"name":"Q1 Bonus","amount":"25000"}],
			"tax":{"amount":12000},
			"pension":{"employeeContribution":24000},
			"netSalary":289000,
			"payroll":{"proRateMonth":"January","year":2026},
			"employee":{"id":"emp-9","firstname":"Ada","lastname":"Obi","company":{"name":"Acme"}}
		}}`)
	})

	ctx := contextutil.WithAccessToken(context.Background(), "tok-123")
	payslip, err := client.Payslip(ctx, "ps-1")

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "/employee-payrolls/payslip/ps-1", gotPath)
	assert.True(t, payslip.Salary.Equal(decimal.NewFromInt(300000)))
	assert.False(t, payslip.ProratedSalary.Valid)
	require.Len(t, payslip.Bonuses, 1)
	assert.True(t, payslip.Bonuses[0].Amount.Equal(decimal.NewFromInt(25000)))
	assert.Nil(t, payslip.NHF)
	assert.Equal(t, "Acme", payslip.Employee.Company.Name)
}

func TestClient_PayrollHistory(t *testing.T) {
	t.Run("with meta", func(t *testing.T) {
		var gotPage, gotLimit string
		client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
			gotPage = string(ctx.QueryArgs().Peek("page"))
			gotLimit = string(ctx.QueryArgs().Peek("limit"))
			ctx.SetBodyString(`{"data":[{"id":"a"},{"id":"b"}],"meta":{"total":12,"perPage":10,"pageCount":2,"page":2,"pagingCounter":11,"hasPrevPage":true,"hasNextPage":false,"previousPage":1,"nextPage":null}}`)
		})

		items, meta, err := client.PayrollHistory(context.Background(), 2, 10)

		require.NoError(t, err)
		assert.Equal(t, "2", gotPage)
		assert.Equal(t, "10", gotLimit)
		assert.Len(t, items, 2)
		require.NotNil(t, meta)
		assert.Equal(t, int64(12), meta.Total)
		assert.Nil(t, meta.NextPage)
		require.NotNil(t, meta.PreviousPage)
		assert.Equal(t, 1, *meta.PreviousPage)
	})

	t.Run("without meta", func(t *testing.T) {
		client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
			ctx.SetBodyString(`{"data":[{"id":"a"}]}`)
		})

		items, meta, err := client.PayrollHistory(context.Background(), 1, 10)

		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Nil(t, meta)
	})
}

func TestClient_ResolveAccount(t *testing.T) {
	var body map[string]string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		_ = json.Unmarshal(ctx.PostBody(), &body)
		ctx.SetBodyString(`{"data":{"accountName":"ADA OBI"}}`)
	})

	name, err := client.ResolveAccount(context.Background(), "bank-1", "0123456789")

	require.NoError(t, err)
	assert.Equal(t, "ADA OBI", name)
	assert.Equal(t, map[string]string{
		"provider":      "paystack",
		"bankId":        "bank-1",
		"accountNumber": "0123456789",
	}, body)
}

func TestClient_ErrorResponses(t *testing.T) {
	t.Run("422 carries field errors", func(t *testing.T) {
		client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
			ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
			ctx.SetBodyString(`{"message":"Validation failed","errors":{"accountNumber":["Account number is invalid"],"bankId":"Bank is required"}}`)
		})

		_, err := client.UpdateMe(context.Background(), upstream.UpdateMeRequest{BankID: "", AccountNumber: "1"})

		apiErr, ok := upstream.AsAPIError(err)
		require.True(t, ok)
		assert.True(t, apiErr.IsValidation())
		assert.Equal(t, "Validation failed", apiErr.Error())
		assert.Equal(t, map[string]string{
			"accountNumber": "Account number is invalid",
			"bankId":        "Bank is required",
		}, apiErr.Errors)
	})

	t.Run("500 without body", func(t *testing.T) {
		client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		})

		_, err := client.GetMe(context.Background())

		apiErr, ok := upstream.AsAPIError(err)
		require.True(t, ok)
		assert.False(t, apiErr.IsValidation())
		assert.Equal(t, "upstream responded with status 500", apiErr.Error())
	})
}

func TestClient_ExpiredContext(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"data":{}}`)
	})

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := client.Dashboard(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
