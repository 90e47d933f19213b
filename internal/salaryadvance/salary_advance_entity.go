package salaryadvance

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusPending = "Pending"

var (
	MaxAdvance        = decimal.NewFromInt(75000)
	ProcessingFeeRate = decimal.RequireFromString("0.025")
)

// Quote is the cost of an advance. Amounts above MaxAdvance are clamped.
type Quote struct {
	Amount         decimal.Decimal
	ProcessingFee  decimal.Decimal
	TotalRepayment decimal.Decimal
}

func NewQuote(amount decimal.Decimal) Quote {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	amount = decimal.Min(amount, MaxAdvance)
	fee := amount.Mul(ProcessingFeeRate)
	return Quote{
		Amount:         amount,
		ProcessingFee:  fee,
		TotalRepayment: amount.Add(fee),
	}
}

type Advance struct {
	ID             string          `json:"id,omitempty"`
	UserID         string          `json:"userId"`
	Amount         decimal.Decimal `json:"amount"`
	ProcessingFee  decimal.Decimal `json:"processingFee"`
	TotalRepayment decimal.Decimal `json:"totalRepayment"`
	Status         string          `json:"status"`
	RequestedAt    time.Time       `json:"requestedAt"`
}
