package salaryadvance

import (
	"time"

	"go-ess/internal/shared/money"

	"github.com/shopspring/decimal"
)

type QuoteRequest struct {
	Amount string `form:"amount"`
}

type CreateRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type QuoteResponse struct {
	Amount         float64 `json:"amount"`
	ProcessingFee  float64 `json:"processingFee"`
	TotalRepayment float64 `json:"totalRepayment"`
	MaxAdvance     float64 `json:"maxAdvance"`
	Display        struct {
		Amount         string `json:"amount"`
		ProcessingFee  string `json:"processingFee"`
		TotalRepayment string `json:"totalRepayment"`
		MaxAdvance     string `json:"maxAdvance"`
	} `json:"display"`
}

type AdvanceResponse struct {
	ID             string    `json:"id"`
	Amount         float64   `json:"amount"`
	ProcessingFee  float64   `json:"processingFee"`
	TotalRepayment float64   `json:"totalRepayment"`
	Status         string    `json:"status"`
	RequestedAt    time.Time `json:"requestedAt"`
}

func mapToQuoteResponse(q Quote, f *money.Formatter) QuoteResponse {
	resp := QuoteResponse{
		Amount:         q.Amount.InexactFloat64(),
		ProcessingFee:  q.ProcessingFee.InexactFloat64(),
		TotalRepayment: q.TotalRepayment.InexactFloat64(),
		MaxAdvance:     MaxAdvance.InexactFloat64(),
	}
	resp.Display.Amount = f.Format(q.Amount, money.Cents)
	resp.Display.ProcessingFee = f.Format(q.ProcessingFee, money.Cents)
	resp.Display.TotalRepayment = f.Format(q.TotalRepayment, money.Cents)
	resp.Display.MaxAdvance = f.Format(MaxAdvance, money.Cents)
	return resp
}

func mapToAdvanceResponse(a Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:             a.ID,
		Amount:         a.Amount.InexactFloat64(),
		ProcessingFee:  a.ProcessingFee.InexactFloat64(),
		TotalRepayment: a.TotalRepayment.InexactFloat64(),
		Status:         a.Status,
		RequestedAt:    a.RequestedAt,
	}
}
