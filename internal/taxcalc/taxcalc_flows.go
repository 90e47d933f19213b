package taxcalc

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go-ess/internal/shared/money"
	taxErrors "go-ess/internal/taxcalc/errors"
	"go-ess/internal/wizard"
)

const (
	FlowPAYE       = "paye"
	FlowRentRelief = "rent-relief"

	OutcomeUpgraded = "upgraded"
	OutcomeSkipped  = "skipped"
)

func estimateFromData(d wizard.Data) EstimateResult {
	return Estimate(EstimateInput{
		MonthlySalary:   money.Parse(d["monthlySalary"]),
		AnnualRent:      money.Parse(d["annualRent"]),
		FreelanceIncome: money.Parse(d["freelanceIncome"]),
	})
}

func digitsOnly(fields ...string) func(field, value string) string {
	return func(field, value string) string {
		for _, f := range fields {
			if f == field {
				return money.DigitsOnly(value)
			}
		}
		return value
	}
}

// PAYEFlow is the two screen salary preview. It has no submission.
func PAYEFlow(f *money.Formatter) *wizard.Flow {
	return &wizard.Flow{
		Name: FlowPAYE,
		Steps: []wizard.Step{
			{
				Name:   "income",
				Title:  "Salary Preview",
				Fields: []string{"monthlySalary", "annualRent", "freelanceIncome"},
				Validate: func(d wizard.Data) map[string]string {
					if !estimateFromData(d).Computable() {
						return map[string]string{"monthlySalary": taxErrors.ErrNoIncome.Message}
					}
					return nil
				},
			},
			{Name: "result", Title: "2026 Salary Result"},
		},
		Init: func() wizard.Data {
			return wizard.Data{
				"monthlySalary":   "300000",
				"annualRent":      "240000",
				"freelanceIncome": "",
			}
		},
		Normalize: digitsOnly("monthlySalary", "annualRent", "freelanceIncome"),
		Derive: func(d wizard.Data) wizard.Data {
			r := estimateFromData(d)
			return wizard.Data{
				"grossAnnual":    f.Format(r.GrossAnnual, money.Whole),
				"rentRelief":     f.Format(r.RentRelief, money.Whole),
				"oldTax":         f.Format(r.OldTax, money.Whole),
				"newTax":         f.Format(r.NewTax, money.Whole),
				"savings":        f.Format(r.Savings, money.Whole),
				"monthlySavings": f.Format(r.MonthlySavings, money.Whole),
				"taxFree":        strconv.FormatBool(r.TaxFree),
				"shareMessage":   ShareMessage(f, r.Savings),
			}
		},
	}
}

func validateClaimDetails(d wizard.Data) map[string]string {
	failing := map[string]string{}
	if !money.Parse(d["annualRent"]).IsPositive() {
		failing["annualRent"] = "Annual Rent must be greater than 0"
	}
	if strings.TrimSpace(d["landlordName"]) == "" {
		failing["landlordName"] = "Landlord Name is required"
	}
	if _, err := time.Parse(time.DateOnly, d["paymentDate"]); err != nil {
		failing["paymentDate"] = "Payment Date must be a valid date"
	}
	return failing
}

// RentReliefFlow uploads a rent receipt, confirms the extracted details,
// saves the claim and then offers the upgrade.
func RentReliefFlow(svc Service, f *money.Formatter) *wizard.Flow {
	return &wizard.Flow{
		Name: FlowRentRelief,
		Steps: []wizard.Step{
			{
				Name:   "upload",
				Title:  "Claim Rent Relief",
				Fields: []string{"fileName"},
				Validate: func(d wizard.Data) map[string]string {
					if strings.TrimSpace(d["fileName"]) == "" {
						return map[string]string{"fileName": "Upload your rent receipt or tenancy agreement"}
					}
					return nil
				},
			},
			{
				Name:           "details",
				Title:          "Confirm Details",
				Fields:         []string{"annualRent", "landlordName", "paymentDate"},
				Validate:       validateClaimDetails,
				ResetOnRetreat: []string{"fileName"},
			},
		},
		Normalize: digitsOnly("annualRent"),
		Submit: func(ctx context.Context, req wizard.SubmitRequest) (wizard.Data, error) {
			claim, err := svc.SaveClaim(ctx, req.UserID, ClaimInput{
				ClaimID:      req.Data["claimId"],
				FileName:     req.Data["fileName"],
				LandlordName: strings.TrimSpace(req.Data["landlordName"]),
				PaymentDate:  req.Data["paymentDate"],
				AnnualRent:   money.Parse(req.Data["annualRent"]),
			})
			if err != nil {
				return nil, err
			}
			return wizard.Data{"claimId": claim.ID}, nil
		},
		Decision: &wizard.Decision{
			Title:    "Lock In Your Savings",
			Outcomes: []string{OutcomeUpgraded, OutcomeSkipped},
		},
		Derive: func(d wizard.Data) wizard.Data {
			c := RentRelief(money.Parse(d["annualRent"]))
			return wizard.Data{
				"deduction":  f.Format(c.Deduction, money.Whole),
				"taxSavings": f.Format(c.TaxSavings, money.Whole),
			}
		},
		TerminalTitle: func(outcome string) string {
			if outcome == OutcomeUpgraded {
				return "Success"
			}
			return "Deduction Saved"
		},
	}
}
