package taxcalc_test

import (
	"testing"

	"go-ess/internal/shared/money"
	"go-ess/internal/taxcalc"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		name       string
		in         taxcalc.EstimateInput
		gross      string
		oldTax     string
		newTax     string
		savings    string
		taxFree    bool
		computable bool
	}{
		{
			name:       "default preview",
			in:         taxcalc.EstimateInput{MonthlySalary: decimal.NewFromInt(300000), AnnualRent: decimal.NewFromInt(240000)},
			gross:      "3600000",
			oldTax:     "486000",
			newTax:     "420000",
			savings:    "66000",
			computable: true,
		},
		{
			name:       "below threshold pays no new tax",
			in:         taxcalc.EstimateInput{MonthlySalary: decimal.NewFromInt(50000)},
			gross:      "600000",
			oldTax:     "81000",
			newTax:     "0",
			savings:    "81000",
			taxFree:    true,
			computable: true,
		},
		{
			name:       "just below threshold",
			in:         taxcalc.EstimateInput{FreelanceIncome: decimal.NewFromInt(799999)},
			gross:      "799999",
			oldTax:     "107999.865",
			newTax:     "0",
			savings:    "107999.865",
			taxFree:    true,
			computable: true,
		},
		{
			name:       "threshold is inclusive",
			in:         taxcalc.EstimateInput{FreelanceIncome: decimal.NewFromInt(800000)},
			gross:      "800000",
			oldTax:     "108000",
			newTax:     "100000",
			savings:    "8000",
			computable: true,
		},
		{
			name:       "rent above income",
			in:         taxcalc.EstimateInput{MonthlySalary: decimal.NewFromInt(100000), AnnualRent: decimal.NewFromInt(2000000)},
			gross:      "1200000",
			oldTax:     "162000",
			newTax:     "0",
			savings:    "162000",
			computable: true,
		},
		{
			name:    "no income",
			in:      taxcalc.EstimateInput{AnnualRent: decimal.NewFromInt(240000)},
			gross:   "0",
			oldTax:  "0",
			newTax:  "0",
			savings: "0",
			taxFree: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := taxcalc.Estimate(tt.in)
			assertDecimal(t, tt.gross, r.GrossAnnual)
			assertDecimal(t, tt.oldTax, r.OldTax)
			assertDecimal(t, tt.newTax, r.NewTax)
			assertDecimal(t, tt.savings, r.Savings)
			assert.Equal(t, tt.taxFree, r.TaxFree)
			assert.Equal(t, tt.computable, r.Computable())
		})
	}
}

func TestEstimate_RentReliefIsUncapped(t *testing.T) {
	r := taxcalc.Estimate(taxcalc.EstimateInput{
		MonthlySalary: decimal.NewFromInt(1000000),
		AnnualRent:    decimal.NewFromInt(6000000),
	})
	assertDecimal(t, "6000000", r.RentRelief)
	assertDecimal(t, "750000", r.NewTax)
	assertDecimal(t, "72500", r.MonthlySavings)
}

func TestRentRelief(t *testing.T) {
	c := taxcalc.RentRelief(decimal.NewFromInt(1200000))
	assertDecimal(t, "240000", c.Deduction)
	assertDecimal(t, "48000", c.TaxSavings)

	capped := taxcalc.RentRelief(decimal.NewFromInt(3000000))
	assertDecimal(t, "500000", capped.Deduction)
	assertDecimal(t, "100000", capped.TaxSavings)

	zero := taxcalc.RentRelief(decimal.Zero)
	assert.True(t, zero.Deduction.IsZero())
}

func TestShareMessage(t *testing.T) {
	f := money.NewFormatter(money.DefaultLocale, money.DefaultCurrency)
	assert.Equal(t, "I'm saving ₦66,000 in 2026 tax!", taxcalc.ShareMessage(f, decimal.NewFromInt(66000)))
}
