package dashboard

import (
	"go-ess/internal/payslip"
	"go-ess/internal/shared/money"
	"go-ess/internal/upstream"
)

type MonthEarnings struct {
	Month    string  `json:"month"`
	Earnings float64 `json:"earnings"`
}

type Display struct {
	AmountEarnedThisMonth string `json:"amountEarnedThisMonth"`
	TotalSalary           string `json:"totalSalary"`
}

type DashboardResponse struct {
	AmountEarnedThisMonth float64                   `json:"amountEarnedThisMonth"`
	DaysLeftInMonth       int                       `json:"daysLeftInMonth"`
	TotalSalary           float64                   `json:"totalSalary"`
	LastSixMonthsSalaries []MonthEarnings           `json:"lastSixMonthsSalaries"`
	HasEarningsData       bool                      `json:"hasEarningsData"`
	RecentPayments        []payslip.PayslipListItem `json:"recentPayments"`
	Display               Display                   `json:"display"`
}

func mapToResponse(d upstream.Dashboard, recent []payslip.PayslipListItem, f *money.Formatter) DashboardResponse {
	months := make([]MonthEarnings, 0, len(d.LastSixMonthsSalaries))
	hasEarnings := false
	for _, m := range d.LastSixMonthsSalaries {
		if m.Earnings.IsPositive() {
			hasEarnings = true
		}
		months = append(months, MonthEarnings{Month: m.Month, Earnings: m.Earnings.InexactFloat64()})
	}

	if recent == nil {
		recent = []payslip.PayslipListItem{}
	}

	return DashboardResponse{
		AmountEarnedThisMonth: d.AmountEarnedThisMonth.InexactFloat64(),
		DaysLeftInMonth:       d.DaysLeftInMonth,
		TotalSalary:           d.TotalSalary.InexactFloat64(),
		LastSixMonthsSalaries: months,
		HasEarningsData:       hasEarnings,
		RecentPayments:        recent,
		Display: Display{
			AmountEarnedThisMonth: f.Format(d.AmountEarnedThisMonth, money.Cents),
			TotalSalary:           f.Format(d.TotalSalary, money.Cents),
		},
	}
}
