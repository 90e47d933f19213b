package reimbursement

import (
	"context"
	"strings"
	"time"

	"go-ess/internal/shared/money"
	"go-ess/internal/wizard"
)

const FlowName = "reimbursement"

func validateDetails(d wizard.Data) map[string]string {
	failing := map[string]string{}
	if !validType(d["type"]) {
		failing["type"] = "Type is invalid"
	}
	if !money.Parse(d["amount"]).IsPositive() {
		failing["amount"] = "Amount must be greater than 0"
	}
	if _, err := time.Parse(time.DateOnly, d["expenseDate"]); err != nil {
		failing["expenseDate"] = "Expense Date is required"
	}
	if strings.TrimSpace(d["description"]) == "" {
		failing["description"] = "Description is required"
	}
	return failing
}

func validateReceipt(d wizard.Data) map[string]string {
	if strings.TrimSpace(d["receiptName"]) == "" {
		return map[string]string{"receiptName": "Receipt is required"}
	}
	return nil
}

func validateReview(d wizard.Data) map[string]string {
	failing := validateDetails(d)
	for k, v := range validateReceipt(d) {
		failing[k] = v
	}
	return failing
}

// Flow is the four screen reimbursement request: details, receipt, review
// and the confirmation.
func Flow(svc Service, now func() time.Time) *wizard.Flow {
	if now == nil {
		now = time.Now
	}
	return &wizard.Flow{
		Name: FlowName,
		Steps: []wizard.Step{
			{
				Name:     "details",
				Title:    "New Reimbursement",
				Fields:   []string{"type", "amount", "expenseDate", "description"},
				Validate: validateDetails,
			},
			{
				Name:     "receipt",
				Title:    "Upload Receipt",
				Fields:   []string{"receiptName"},
				Validate: validateReceipt,
			},
			{
				Name:     "review",
				Title:    "Review Request",
				Validate: validateReview,
			},
		},
		Init: func() wizard.Data {
			return wizard.Data{
				"type":        TypeTravel,
				"amount":      "",
				"expenseDate": now().Format(time.DateOnly),
				"description": "",
			}
		},
		Submit: func(ctx context.Context, req wizard.SubmitRequest) (wizard.Data, error) {
			resp, err := svc.Submit(ctx, req.UserID, SubmitRequest{
				Type:        req.Data["type"],
				Amount:      money.Parse(req.Data["amount"]),
				ExpenseDate: req.Data["expenseDate"],
				Description: req.Data["description"],
				ReceiptName: req.Data["receiptName"],
			})
			if err != nil {
				return nil, err
			}
			return wizard.Data{
				"id":            resp.ID,
				"reference":     resp.Reference,
				"amountDisplay": resp.AmountDisplay,
			}, nil
		},
	}
}
