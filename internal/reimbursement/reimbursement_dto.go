package reimbursement

import (
	"time"

	"go-ess/internal/shared/money"

	"github.com/shopspring/decimal"
)

// amountDisplay keeps kobo only when present.
var amountDisplay = money.Options{MinFractionDigits: 0, MaxFractionDigits: 2}

type SubmitRequest struct {
	Type        string          `json:"type" binding:"required,oneof=Travel Meals Supplies Other"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expenseDate" binding:"required,datetime=2006-01-02"`
	Description string          `json:"description" binding:"required"`
	ReceiptName string          `json:"receiptName" binding:"required"`
}

type ListRequest struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type ReimbursementResponse struct {
	ID            string    `json:"id"`
	Reference     string    `json:"reference"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	AmountDisplay string    `json:"amountDisplay"`
	ExpenseDate   string    `json:"expenseDate"`
	Description   string    `json:"description"`
	ReceiptName   string    `json:"receiptName"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
}

func mapToResponse(r Reimbursement, f *money.Formatter) ReimbursementResponse {
	return ReimbursementResponse{
		ID:            r.ID,
		Reference:     r.Reference,
		Type:          r.Type,
		Amount:        r.Amount.InexactFloat64(),
		AmountDisplay: f.Format(r.Amount, amountDisplay),
		ExpenseDate:   r.ExpenseDate,
		Description:   r.Description,
		ReceiptName:   r.ReceiptName,
		Status:        r.Status,
		Date:          r.Date,
	}
}
