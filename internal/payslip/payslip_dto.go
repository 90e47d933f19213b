package payslip

import (
	"strings"
	"time"

	"go-ess/internal/shared/money"
	"go-ess/internal/upstream"
)

type LineResponse struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type PayslipResponse struct {
	ID              string         `json:"id"`
	MonthYear       string         `json:"monthYear"`
	EmployeeName    string         `json:"employeeName"`
	EmployeeID      string         `json:"employeeId"`
	Department      string         `json:"department"`
	PayPeriod       string         `json:"payPeriod"`
	Organization    string         `json:"organization"`
	Earnings        []LineResponse `json:"earnings"`
	Deductions      []LineResponse `json:"deductions"`
	GrossEarnings   float64        `json:"grossEarnings"`
	TotalDeductions float64        `json:"totalDeductions"`
	NetSalary       float64        `json:"netSalary"`
}

type PayslipListItem struct {
	ID           string  `json:"id"`
	MonthYear    string  `json:"monthYear"`
	Amount       string  `json:"amount"`
	Organization string  `json:"organization"`
	Status       string  `json:"status"`
	NetSalary    float64 `json:"netSalary"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	PayoutStatus string  `json:"payoutStatus,omitempty"`
}

type ListPayslipsRequest struct {
	Page int `form:"page" binding:"omitempty,min=1"`
}

type PDFFile struct {
	Name    string
	Content []byte
}

func mapToResponse(p DerivedPayslip) PayslipResponse {
	return PayslipResponse{
		ID:              p.ID,
		MonthYear:       p.MonthYear,
		EmployeeName:    p.EmployeeName,
		EmployeeID:      p.EmployeeID,
		Department:      p.Department,
		PayPeriod:       p.PayPeriod,
		Organization:    p.Organization,
		Earnings:        mapLines(p.Earnings),
		Deductions:      mapLines(p.Deductions),
		GrossEarnings:   p.GrossEarnings.InexactFloat64(),
		TotalDeductions: p.TotalDeductions.InexactFloat64(),
		NetSalary:       p.NetSalary.InexactFloat64(),
	}
}

func mapLines(lines []Line) []LineResponse {
	out := make([]LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineResponse{Description: l.Description, Amount: l.Amount.InexactFloat64()})
	}
	return out
}

// RecordFromUpstream maps the API payroll item onto the domain record.
func RecordFromUpstream(p upstream.Payroll) PayrollRecord {
	record := PayrollRecord{
		ID:                    p.ID,
		BaseSalary:            p.Salary,
		ProratedSalary:        p.ProratedSalary,
		SalaryBreakdownRatios: mapRatios(p.SalaryBreakdown),
		NetSalary:             p.NetSalary,
	}

	for _, b := range p.Bonuses {
		record.Bonuses = append(record.Bonuses, Bonus{Name: b.Name, Amount: b.Amount})
	}
	if p.Tax != nil {
		record.Tax = p.Tax.Amount
	}
	if p.Pension != nil {
		record.Pension = p.Pension.EmployeeContribution
	}
	if p.NHF != nil {
		record.NHF = p.NHF.Amount
	}
	if p.TotalDeductions != nil {
		record.OtherDeductions = p.TotalDeductions.Amount
	}
	if p.Payroll != nil {
		record.Period = Period{Month: p.Payroll.ProRateMonth, Year: p.Payroll.Year}
	}

	if e := p.Employee; e != nil {
		record.EmployeeBreakdown = mapRatios(e.SalaryBreakdown)
		record.Employee = EmployeeInfo{
			ID:        e.ID,
			Firstname: e.Firstname,
			Lastname:  e.Lastname,
		}
		for _, g := range e.Groups {
			if g.Group != nil {
				record.Employee.Groups = append(record.Employee.Groups, g.Group.Name)
			}
		}
		if e.Company != nil {
			record.OrganizationBreakdown = mapRatios(e.Company.SalaryBreakdown)
			record.Employee.Organization = e.Company.Name
		}
	}

	return record
}

func mapRatios(in []upstream.Ratio) []Ratio {
	if len(in) == 0 {
		return nil
	}
	out := make([]Ratio, 0, len(in))
	for _, r := range in {
		out = append(out, Ratio{Name: r.Name, PercentOfBase: r.Value})
	}
	return out
}

func mapToListItem(p upstream.Payroll, formatter *money.Formatter) PayslipListItem {
	raw := p.NetSalary
	if p.Amount.Valid && !p.Amount.Decimal.IsZero() {
		raw = p.Amount.Decimal
	}

	monthYear := p.MonthYear
	if monthYear == "" {
		monthYear = monthYearFromTimestamp(p.CreatedAt)
	}

	return PayslipListItem{
		ID:           p.ID,
		MonthYear:    monthYear,
		Amount:       formatter.FormatAmount(raw),
		Organization: firstNonBlank(p.Organization, companyName(p), "N/A"),
		Status:       firstNonBlank(p.Status, p.PayoutStatus, "Paid"),
		NetSalary:    p.NetSalary.InexactFloat64(),
		CreatedAt:    p.CreatedAt,
		PayoutStatus: p.PayoutStatus,
	}
}

func companyName(p upstream.Payroll) string {
	if p.Employee != nil && p.Employee.Company != nil {
		return p.Employee.Company.Name
	}
	return ""
}

func monthYearFromTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("January 2006")
		}
	}
	return ""
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// PDFName is Payslip-<Month>-<Year>.pdf, whitespace collapsed to dashes.
func PDFName(monthYear string) string {
	name := strings.Join(strings.Fields(monthYear), "-")
	if name == "" {
		name = "Payslip"
	} else {
		name = "Payslip-" + name
	}
	return name + ".pdf"
}
