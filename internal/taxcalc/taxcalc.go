package taxcalc

import (
	"go-ess/internal/shared/money"

	"github.com/shopspring/decimal"
)

var (
	oldTaxRate       = decimal.RequireFromString("0.135")
	newTaxRate       = decimal.RequireFromString("0.125")
	taxFreeThreshold = decimal.NewFromInt(800000)

	rentDeductionCap  = decimal.NewFromInt(500000)
	rentDeductionRate = decimal.RequireFromString("0.2")
	// Flat rate applied to the rent deduction in the claim flow.
	claimTaxRate = decimal.RequireFromString("0.20")

	monthsPerYear = decimal.NewFromInt(12)
)

type EstimateInput struct {
	MonthlySalary   decimal.Decimal
	AnnualRent      decimal.Decimal
	FreelanceIncome decimal.Decimal
}

type EstimateResult struct {
	GrossAnnual    decimal.Decimal
	RentRelief     decimal.Decimal
	OldTax         decimal.Decimal
	NewTax         decimal.Decimal
	Savings        decimal.Decimal
	MonthlySavings decimal.Decimal
	TaxFree        bool
}

// Computable reports whether the estimate has any income to work with.
func (r EstimateResult) Computable() bool {
	return r.GrossAnnual.IsPositive()
}

// Estimate compares the current PAYE regime with the 2026 one. The full
// annual rent counts as relief here; savings may be negative.
func Estimate(in EstimateInput) EstimateResult {
	gross := in.MonthlySalary.Mul(monthsPerYear).Add(in.FreelanceIncome)
	relief := in.AnnualRent

	oldTax := gross.Mul(oldTaxRate)

	newTax := decimal.Zero
	if gross.GreaterThanOrEqual(taxFreeThreshold) {
		if taxable := gross.Sub(relief); taxable.IsPositive() {
			newTax = taxable.Mul(newTaxRate)
		}
	}

	savings := oldTax.Sub(newTax)
	return EstimateResult{
		GrossAnnual:    gross,
		RentRelief:     relief,
		OldTax:         oldTax,
		NewTax:         newTax,
		Savings:        savings,
		MonthlySavings: savings.Div(monthsPerYear),
		TaxFree:        gross.LessThan(taxFreeThreshold),
	}
}

type RentReliefClaim struct {
	AnnualRent decimal.Decimal
	Deduction  decimal.Decimal
	TaxSavings decimal.Decimal
}

// RentRelief is the capped deduction used when claiming rent relief. It
// does not share the uncapped relief of Estimate.
func RentRelief(annualRent decimal.Decimal) RentReliefClaim {
	deduction := decimal.Min(rentDeductionCap, annualRent.Mul(rentDeductionRate))
	return RentReliefClaim{
		AnnualRent: annualRent,
		Deduction:  deduction,
		TaxSavings: deduction.Mul(claimTaxRate),
	}
}

func ShareMessage(f *money.Formatter, savings decimal.Decimal) string {
	return "I'm saving " + f.Format(savings, money.Whole) + " in 2026 tax!"
}
