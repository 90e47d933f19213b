package payslip_test

import (
	"testing"

	"go-ess/internal/payslip"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func baseRecord() payslip.PayrollRecord {
	return payslip.PayrollRecord{
		ID:         "ps-1",
		BaseSalary: d(300000),
		Bonuses: []payslip.Bonus{
			{Name: "Performance Bonus", Amount: d(20000)},
			{Name: "Holiday Bonus", Amount: d(5000)},
		},
		Tax:             d(12000),
		Pension:         d(24000),
		NHF:             d(7500),
		OtherDeductions: d(1500),
		NetSalary:       d(280000),
		Period:          payslip.Period{Month: "January", Year: 2026},
		Employee: payslip.EmployeeInfo{
			ID:           "emp-abc",
			Firstname:    "Ada",
			Lastname:     "Obi",
			Groups:       []string{"Engineering", "", "Platform"},
			Organization: "Acme",
		},
	}
}

func TestDerive_Totals(t *testing.T) {
	record := baseRecord()
	record.SalaryBreakdownRatios = []payslip.Ratio{
		{Name: "Basic", PercentOfBase: d(60)},
		{Name: "Housing", PercentOfBase: d(25)},
		{Name: "Transport", PercentOfBase: d(15)},
	}

	got := payslip.Derive(record)

	require.Len(t, got.Earnings, 5)
	assert.Equal(t, "Basic", got.Earnings[0].Description)
	assert.True(t, got.Earnings[0].Amount.Equal(d(180000)))
	assert.True(t, got.Earnings[1].Amount.Equal(d(75000)))
	assert.Equal(t, "Performance Bonus", got.Earnings[3].Description)
	assert.True(t, got.Earnings[4].Amount.Equal(d(5000)))

	assert.True(t, got.GrossEarnings.Equal(d(325000)), got.GrossEarnings.String())
	assert.True(t, got.TotalDeductions.Equal(d(45000)), got.TotalDeductions.String())

	labels := make([]string, 0, len(got.Deductions))
	for _, l := range got.Deductions {
		labels = append(labels, l.Description)
	}
	assert.Equal(t, []string{"PAYE Tax", "Pension Contribution", "NHF Contribution", "Other Deductions"}, labels)
}

func TestDerive_NetSalaryIsVerbatim(t *testing.T) {
	record := baseRecord()

	got := payslip.Derive(record)

	// 325000 - 45000 would be 280000; make the record disagree on purpose.
	record.NetSalary = d(279999)
	got2 := payslip.Derive(record)

	assert.True(t, got.NetSalary.Equal(d(280000)))
	assert.True(t, got2.NetSalary.Equal(d(279999)))
	assert.True(t, got2.GrossEarnings.Sub(got2.TotalDeductions).Equal(d(280000)))
}

func TestDerive_ProratedSalaryWins(t *testing.T) {
	record := baseRecord()
	record.Bonuses = nil
	record.ProratedSalary = decimal.NewNullDecimal(d(150000))

	got := payslip.Derive(record)

	require.Len(t, got.Earnings, 1)
	assert.Equal(t, "Basic Allowance", got.Earnings[0].Description)
	assert.True(t, got.Earnings[0].Amount.Equal(d(150000)))
	assert.True(t, got.GrossEarnings.Equal(d(150000)))
}

func TestDerive_ZeroProratedFallsBackToBase(t *testing.T) {
	record := baseRecord()
	record.ProratedSalary = decimal.NewNullDecimal(decimal.Zero)

	assert.True(t, payslip.SalaryBasis(record).Equal(d(300000)))
}

func TestDerive_BreakdownFallbackOrder(t *testing.T) {
	employee := []payslip.Ratio{{Name: "Employee Basic", PercentOfBase: d(100)}}
	organization := []payslip.Ratio{{Name: "Org Basic", PercentOfBase: d(100)}}

	tests := []struct {
		name   string
		mutate func(r *payslip.PayrollRecord)
		want   string
	}{
		{
			name: "record level",
			mutate: func(r *payslip.PayrollRecord) {
				r.SalaryBreakdownRatios = []payslip.Ratio{{Name: "Record Basic", PercentOfBase: d(100)}}
				r.EmployeeBreakdown = employee
				r.OrganizationBreakdown = organization
			},
			want: "Record Basic",
		},
		{
			name: "employee level when record is empty",
			mutate: func(r *payslip.PayrollRecord) {
				r.SalaryBreakdownRatios = []payslip.Ratio{}
				r.EmployeeBreakdown = employee
				r.OrganizationBreakdown = organization
			},
			want: "Employee Basic",
		},
		{
			name: "organization level",
			mutate: func(r *payslip.PayrollRecord) {
				r.OrganizationBreakdown = organization
			},
			want: "Org Basic",
		},
		{
			name:   "default",
			mutate: func(r *payslip.PayrollRecord) {},
			want:   "Basic Allowance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := baseRecord()
			tt.mutate(&record)

			got := payslip.Derive(record)

			assert.Equal(t, tt.want, got.Earnings[0].Description)
			assert.True(t, got.GrossEarnings.Equal(d(325000)))
			assert.True(t, got.TotalDeductions.Equal(d(45000)))
		})
	}
}

func TestFirstNonEmpty_IsLazy(t *testing.T) {
	called := false
	chain := payslip.FirstNonEmpty(
		payslip.Static([]payslip.Ratio{{Name: "first", PercentOfBase: d(100)}}),
		func() []payslip.Ratio {
			called = true
			return nil
		},
	)

	got := chain()

	require.Len(t, got, 1)
	assert.False(t, called)
	assert.Nil(t, payslip.FirstNonEmpty(nil, payslip.Static(nil))())
}

func TestDerive_ZeroBasisDoesNotFail(t *testing.T) {
	got := payslip.Derive(payslip.PayrollRecord{})

	require.Len(t, got.Earnings, 1)
	assert.True(t, got.Earnings[0].Amount.IsZero())
	assert.True(t, got.GrossEarnings.IsZero())
	assert.True(t, got.TotalDeductions.IsZero())
	assert.Equal(t, "N/A", got.Department)
}

func TestDerive_Header(t *testing.T) {
	got := payslip.Derive(baseRecord())

	assert.Equal(t, "January 2026", got.MonthYear)
	assert.Equal(t, "January 2026", got.PayPeriod)
	assert.Equal(t, "Ada Obi", got.EmployeeName)
	assert.Equal(t, "EMP-ABC", got.EmployeeID)
	assert.Equal(t, "Engineering, Platform", got.Department)
	assert.Equal(t, "Acme", got.Organization)
}

func TestPDFName(t *testing.T) {
	assert.Equal(t, "Payslip-January-2026.pdf", payslip.PDFName("January  2026"))
	assert.Equal(t, "Payslip.pdf", payslip.PDFName(""))
}
