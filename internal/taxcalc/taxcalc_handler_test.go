package taxcalc_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ess/internal/taxcalc"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTaxRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	deps := setupServiceTest(t)

	r := gin.New()
	taxcalc.RegisterRoutes(r.Group("/api/v1"), taxcalc.NewHandler(deps.service))
	return r
}

func TestTaxHandler_EstimatePAYE(t *testing.T) {
	r := newTaxRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tax/paye", strings.NewReader(`{"monthlySalary":"300000","annualRent":240000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	var resp taxcalc.PAYEResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 3600000.0, resp.GrossAnnual)
	assert.False(t, resp.TaxFree)
}

func TestTaxHandler_EstimatePAYENoIncome(t *testing.T) {
	r := newTaxRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tax/paye", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaxHandler_EstimateRentRelief(t *testing.T) {
	r := newTaxRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tax/rent-relief/estimate", strings.NewReader(`{"annualRent":3000000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	var resp taxcalc.RentReliefResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 500000.0, resp.Deduction)
	assert.Equal(t, "₦100,000", resp.Display.TaxSavings)
}
