package money_test

import (
	"testing"

	"go-ess/internal/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		opts   money.Options
		want   string
	}{
		{name: "whole naira", amount: decimal.NewFromInt(81000), opts: money.Whole, want: "₦81,000"},
		{name: "whole rounds", amount: decimal.RequireFromString("6750.6"), opts: money.Whole, want: "₦6,751"},
		{name: "cents", amount: decimal.RequireFromString("1234.5"), opts: money.Cents, want: "₦1,234.50"},
		{name: "zero", amount: decimal.Zero, opts: money.Cents, want: "₦0.00"},
		{name: "negative", amount: decimal.NewFromInt(-81000), opts: money.Whole, want: "-₦81,000"},
		{name: "millions", amount: decimal.NewFromInt(1500000), opts: money.Whole, want: "₦1,500,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.Format(tt.amount, tt.opts))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "", money.FormatAmount(decimal.Zero))
	assert.Equal(t, "150,000.00", money.FormatAmount(decimal.NewFromInt(150000)))
}

func TestNewFormatter_UnknownCurrency(t *testing.T) {
	f := money.NewFormatter("en-NG", "xof")

	assert.Equal(t, "XOF ", f.Symbol())
	assert.Equal(t, "XOF 1,000", f.Format(decimal.NewFromInt(1000), money.Whole))
}

func TestNewFormatter_BadLocaleFallsBack(t *testing.T) {
	f := money.NewFormatter("not a locale!!", "NGN")

	assert.Equal(t, "₦2,500", f.Format(decimal.NewFromInt(2500), money.Whole))
}

func TestParse(t *testing.T) {
	assert.True(t, money.Parse("1,200,000").Equal(decimal.NewFromInt(1200000)))
	assert.True(t, money.Parse(" 45.50 ").Equal(decimal.RequireFromString("45.50")))
	assert.True(t, money.Parse("abc").IsZero())
	assert.True(t, money.Parse("").IsZero())
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "1200000", money.DigitsOnly("₦1,200,000"))
	assert.Equal(t, "", money.DigitsOnly("n/a"))
}
