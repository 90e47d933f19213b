package salaryadvance

import (
	"context"

	"go-ess/internal/shared/money"
	"go-ess/internal/wizard"
)

const FlowName = "salary-advance"

// clampAmount keeps only digits and caps the value at MaxAdvance.
func clampAmount(field, value string) string {
	if field != "amount" {
		return value
	}
	digits := money.DigitsOnly(value)
	if digits == "" {
		return ""
	}
	if money.Parse(digits).GreaterThan(MaxAdvance) {
		return MaxAdvance.String()
	}
	return digits
}

func Flow(svc Service, f *money.Formatter) *wizard.Flow {
	return &wizard.Flow{
		Name: FlowName,
		Steps: []wizard.Step{
			{
				Name:   "amount",
				Title:  "Salary Advance",
				Fields: []string{"amount"},
				Validate: func(d wizard.Data) map[string]string {
					if !money.Parse(d["amount"]).IsPositive() {
						return map[string]string{"amount": "Amount must be greater than 0"}
					}
					return nil
				},
			},
			{Name: "confirm", Title: "Confirm Request"},
		},
		Init:      func() wizard.Data { return wizard.Data{"amount": ""} },
		Normalize: clampAmount,
		Derive: func(d wizard.Data) wizard.Data {
			q := NewQuote(money.Parse(d["amount"]))
			return wizard.Data{
				"amount":         f.Format(q.Amount, money.Cents),
				"processingFee":  f.Format(q.ProcessingFee, money.Cents),
				"totalRepayment": f.Format(q.TotalRepayment, money.Cents),
				"maxAdvance":     f.Format(MaxAdvance, money.Cents),
			}
		},
		Submit: func(ctx context.Context, req wizard.SubmitRequest) (wizard.Data, error) {
			resp, err := svc.Request(ctx, req.UserID, money.Parse(req.Data["amount"]))
			if err != nil {
				return nil, err
			}
			return wizard.Data{"id": resp.ID}, nil
		},
	}
}
