package taxcalc

import (
	"time"

	"go-ess/internal/shared/money"

	"github.com/shopspring/decimal"
)

type PAYERequest struct {
	MonthlySalary   decimal.Decimal `json:"monthlySalary"`
	AnnualRent      decimal.Decimal `json:"annualRent"`
	FreelanceIncome decimal.Decimal `json:"freelanceIncome"`
}

type PAYEResponse struct {
	GrossAnnual    float64     `json:"grossAnnual"`
	RentRelief     float64     `json:"rentRelief"`
	OldTax         float64     `json:"oldTax"`
	NewTax         float64     `json:"newTax"`
	Savings        float64     `json:"savings"`
	MonthlySavings float64     `json:"monthlySavings"`
	TaxFree        bool        `json:"taxFree"`
	ShareMessage   string      `json:"shareMessage"`
	Display        PAYEDisplay `json:"display"`
}

// PAYEDisplay holds the same figures formatted for the screen.
type PAYEDisplay struct {
	GrossAnnual    string `json:"grossAnnual"`
	OldTax         string `json:"oldTax"`
	NewTax         string `json:"newTax"`
	Savings        string `json:"savings"`
	MonthlySavings string `json:"monthlySavings"`
}

type RentReliefRequest struct {
	AnnualRent decimal.Decimal `json:"annualRent"`
}

type RentReliefResponse struct {
	AnnualRent float64 `json:"annualRent"`
	Deduction  float64 `json:"deduction"`
	TaxSavings float64 `json:"taxSavings"`
	Display    struct {
		Deduction  string `json:"deduction"`
		TaxSavings string `json:"taxSavings"`
	} `json:"display"`
}

type ClaimInput struct {
	// ClaimID is set when a saved claim is being corrected.
	ClaimID      string
	FileName     string
	LandlordName string
	PaymentDate  string
	AnnualRent   decimal.Decimal
}

// Claim is the stored rent relief claim.
type Claim struct {
	ID           string          `json:"id,omitempty"`
	UserID       string          `json:"userId"`
	FileName     string          `json:"fileName"`
	LandlordName string          `json:"landlordName"`
	PaymentDate  string          `json:"paymentDate"`
	AnnualRent   decimal.Decimal `json:"annualRent"`
	Deduction    decimal.Decimal `json:"deduction"`
	TaxSavings   decimal.Decimal `json:"taxSavings"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type ClaimResponse struct {
	ID           string    `json:"id"`
	FileName     string    `json:"fileName"`
	LandlordName string    `json:"landlordName"`
	PaymentDate  string    `json:"paymentDate"`
	AnnualRent   float64   `json:"annualRent"`
	Deduction    float64   `json:"deduction"`
	TaxSavings   float64   `json:"taxSavings"`
	CreatedAt    time.Time `json:"createdAt"`
}

func mapToPAYEResponse(r EstimateResult, f *money.Formatter) PAYEResponse {
	return PAYEResponse{
		GrossAnnual:    r.GrossAnnual.InexactFloat64(),
		RentRelief:     r.RentRelief.InexactFloat64(),
		OldTax:         r.OldTax.InexactFloat64(),
		NewTax:         r.NewTax.InexactFloat64(),
		Savings:        r.Savings.InexactFloat64(),
		MonthlySavings: r.MonthlySavings.InexactFloat64(),
		TaxFree:        r.TaxFree,
		ShareMessage:   ShareMessage(f, r.Savings),
		Display: PAYEDisplay{
			GrossAnnual:    f.Format(r.GrossAnnual, money.Whole),
			OldTax:         f.Format(r.OldTax, money.Whole),
			NewTax:         f.Format(r.NewTax, money.Whole),
			Savings:        f.Format(r.Savings, money.Whole),
			MonthlySavings: f.Format(r.MonthlySavings, money.Whole),
		},
	}
}

func mapToRentReliefResponse(c RentReliefClaim, f *money.Formatter) RentReliefResponse {
	resp := RentReliefResponse{
		AnnualRent: c.AnnualRent.InexactFloat64(),
		Deduction:  c.Deduction.InexactFloat64(),
		TaxSavings: c.TaxSavings.InexactFloat64(),
	}
	resp.Display.Deduction = f.Format(c.Deduction, money.Whole)
	resp.Display.TaxSavings = f.Format(c.TaxSavings, money.Whole)
	return resp
}

func mapToClaimResponse(c Claim) ClaimResponse {
	return ClaimResponse{
		ID:           c.ID,
		FileName:     c.FileName,
		LandlordName: c.LandlordName,
		PaymentDate:  c.PaymentDate,
		AnnualRent:   c.AnnualRent.InexactFloat64(),
		Deduction:    c.Deduction.InexactFloat64(),
		TaxSavings:   c.TaxSavings.InexactFloat64(),
		CreatedAt:    c.CreatedAt,
	}
}
