package upstream

import "github.com/shopspring/decimal"

type Ratio struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type Bonus struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type AmountField struct {
	Amount decimal.Decimal `json:"amount"`
}

type PensionField struct {
	EmployeeContribution decimal.Decimal `json:"employeeContribution"`
}

type PayrollPeriod struct {
	ProRateMonth string `json:"proRateMonth"`
	Year         int    `json:"year"`
}

type Company struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	SalaryBreakdown []Ratio `json:"salaryBreakdown"`
}

type Group struct {
	Name string `json:"name"`
}

type GroupMembership struct {
	Group *Group `json:"group"`
}

type Employee struct {
	ID              string            `json:"id"`
	Firstname       string            `json:"firstname"`
	Lastname        string            `json:"lastname"`
	Groups          []GroupMembership `json:"groups"`
	SalaryBreakdown []Ratio           `json:"salaryBreakdown"`
	Company         *Company          `json:"company"`
}

// Payroll is one employee payroll item as served by payslip and
// payroll-history.
type Payroll struct {
	ID              string              `json:"id"`
	Salary          decimal.Decimal     `json:"salary"`
	ProratedSalary  decimal.NullDecimal `json:"proratedSalary"`
	SalaryBreakdown []Ratio             `json:"salaryBreakdown"`
	Bonuses         []Bonus             `json:"bonuses"`
	Tax             *AmountField        `json:"tax"`
	Pension         *PensionField       `json:"pension"`
	NHF             *AmountField        `json:"nhf"`
	TotalDeductions *AmountField        `json:"totalDeductions"`
	NetSalary       decimal.Decimal     `json:"netSalary"`
	Amount          decimal.NullDecimal `json:"amount"`
	Payroll         *PayrollPeriod      `json:"payroll"`
	Employee        *Employee           `json:"employee"`
	MonthYear       string              `json:"monthYear"`
	Organization    string              `json:"organization"`
	Status          string              `json:"status"`
	PayoutStatus    string              `json:"payoutStatus"`
	CreatedAt       string              `json:"createdAt"`
}

type PageMeta struct {
	Total         int64 `json:"total"`
	PerPage       int   `json:"perPage"`
	PageCount     int   `json:"pageCount"`
	Page          int   `json:"page"`
	PagingCounter int64 `json:"pagingCounter"`
	HasPrevPage   bool  `json:"hasPrevPage"`
	HasNextPage   bool  `json:"hasNextPage"`
	PreviousPage  *int  `json:"previousPage"`
	NextPage      *int  `json:"nextPage"`
}

type Bank struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Slug string `json:"slug"`
}

type Country struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type User struct {
	ID            string   `json:"id"`
	Email         string   `json:"email"`
	Firstname     string   `json:"firstname"`
	Lastname      string   `json:"lastname"`
	BankID        string   `json:"bankId"`
	AccountNumber string   `json:"accountNumber"`
	Country       *Country `json:"country"`
}

type UpdateMeRequest struct {
	BankID        string `json:"bankId"`
	AccountNumber string `json:"accountNumber"`
}

type ResolveAccountRequest struct {
	Provider      string `json:"provider"`
	BankID        string `json:"bankId"`
	AccountNumber string `json:"accountNumber"`
}

type ResolveAccountResponse struct {
	AccountName string `json:"accountName"`
}

type MonthEarnings struct {
	Month    string          `json:"month"`
	Earnings decimal.Decimal `json:"earnings"`
}

type Dashboard struct {
	AmountEarnedThisMonth decimal.Decimal `json:"amountEarnedThisMonth"`
	DaysLeftInMonth       int             `json:"daysLeftInMonth"`
	TotalSalary           decimal.Decimal `json:"totalSalary"`
	LastSixMonthsSalaries []MonthEarnings `json:"lastSixMonthsSalaries"`
}
