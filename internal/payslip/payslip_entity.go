package payslip

import "github.com/shopspring/decimal"

// Ratio is a named share of the salary basis, in percent.
type Ratio struct {
	Name          string
	PercentOfBase decimal.Decimal
}

type Bonus struct {
	Name   string
	Amount decimal.Decimal
}

type Period struct {
	Month string
	Year  int
}

type EmployeeInfo struct {
	ID           string
	Firstname    string
	Lastname     string
	Groups       []string
	Organization string
}

// PayrollRecord is the raw payroll item for one pay period.
type PayrollRecord struct {
	ID                    string
	BaseSalary            decimal.Decimal
	ProratedSalary        decimal.NullDecimal
	Bonuses               []Bonus
	SalaryBreakdownRatios []Ratio
	EmployeeBreakdown     []Ratio
	OrganizationBreakdown []Ratio
	Tax                   decimal.Decimal
	Pension               decimal.Decimal
	NHF                   decimal.Decimal
	OtherDeductions       decimal.Decimal
	NetSalary             decimal.Decimal
	Period                Period
	Employee              EmployeeInfo
}

type Line struct {
	Description string
	Amount      decimal.Decimal
}

type DerivedPayslip struct {
	ID              string
	MonthYear       string
	EmployeeName    string
	EmployeeID      string
	Department      string
	PayPeriod       string
	Organization    string
	Earnings        []Line
	Deductions      []Line
	GrossEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
}
