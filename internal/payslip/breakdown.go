package payslip

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	LabelPAYE    = "PAYE Tax"
	LabelPension = "Pension Contribution"
	LabelNHF     = "NHF Contribution"
	LabelOther   = "Other Deductions"

	defaultBreakdownName = "Basic Allowance"
)

var hundred = decimal.NewFromInt(100)

// BreakdownProvider lazily yields a breakdown; an empty result means "try
// the next source".
type BreakdownProvider func() []Ratio

func Static(ratios []Ratio) BreakdownProvider {
	return func() []Ratio { return ratios }
}

func DefaultBreakdown() []Ratio {
	return []Ratio{{Name: defaultBreakdownName, PercentOfBase: hundred}}
}

// FirstNonEmpty evaluates providers in order and returns the first
// non-empty breakdown.
func FirstNonEmpty(providers ...BreakdownProvider) BreakdownProvider {
	return func() []Ratio {
		for _, p := range providers {
			if p == nil {
				continue
			}
			if ratios := p(); len(ratios) > 0 {
				return ratios
			}
		}
		return nil
	}
}

// BreakdownChain is record, then employee, then organization, then the
// single Basic Allowance line.
func BreakdownChain(record PayrollRecord) BreakdownProvider {
	return FirstNonEmpty(
		Static(record.SalaryBreakdownRatios),
		Static(record.EmployeeBreakdown),
		Static(record.OrganizationBreakdown),
		DefaultBreakdown,
	)
}

// SalaryBasis is the prorated salary when one was sent, else the base.
func SalaryBasis(record PayrollRecord) decimal.Decimal {
	if record.ProratedSalary.Valid && !record.ProratedSalary.Decimal.IsZero() {
		return record.ProratedSalary.Decimal
	}
	return record.BaseSalary
}

// Derive turns a payroll record into display lines and totals. NetSalary
// is the record's own figure and is not reconciled with the lines.
func Derive(record PayrollRecord) DerivedPayslip {
	basis := SalaryBasis(record)
	ratios := BreakdownChain(record)()

	earnings := make([]Line, 0, len(ratios)+len(record.Bonuses))
	for _, r := range ratios {
		earnings = append(earnings, Line{
			Description: r.Name,
			Amount:      r.PercentOfBase.Mul(basis).Div(hundred),
		})
	}

	bonusTotal := decimal.Zero
	for _, b := range record.Bonuses {
		earnings = append(earnings, Line{Description: b.Name, Amount: b.Amount})
		bonusTotal = bonusTotal.Add(b.Amount)
	}

	deductions := []Line{
		{Description: LabelPAYE, Amount: record.Tax},
		{Description: LabelPension, Amount: record.Pension},
		{Description: LabelNHF, Amount: record.NHF},
		{Description: LabelOther, Amount: record.OtherDeductions},
	}

	totalDeductions := decimal.Zero
	for _, d := range deductions {
		totalDeductions = totalDeductions.Add(d.Amount)
	}

	period := record.Period.String()

	return DerivedPayslip{
		ID:              record.ID,
		MonthYear:       period,
		PayPeriod:       period,
		EmployeeName:    strings.TrimSpace(record.Employee.Firstname + " " + record.Employee.Lastname),
		EmployeeID:      strings.ToUpper(record.Employee.ID),
		Department:      department(record.Employee.Groups),
		Organization:    record.Employee.Organization,
		Earnings:        earnings,
		Deductions:      deductions,
		GrossEarnings:   basis.Add(bonusTotal),
		TotalDeductions: totalDeductions,
		NetSalary:       record.NetSalary,
	}
}

func (p Period) String() string {
	if p.Month == "" && p.Year == 0 {
		return ""
	}
	if p.Year == 0 {
		return p.Month
	}
	return strings.TrimSpace(p.Month + " " + strconv.Itoa(p.Year))
}

func department(groups []string) string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		if g != "" {
			names = append(names, g)
		}
	}
	if len(names) == 0 {
		return "N/A"
	}
	return strings.Join(names, ", ")
}
