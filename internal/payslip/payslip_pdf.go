package payslip

import (
	"bytes"

	"go-ess/internal/shared/money"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// renderPayslipPDF lays the payslip out on a single A4 page. The core
// fonts are cp1252, so amounts use the currency code instead of the symbol.
func renderPayslipPDF(p PayslipResponse, formatter *money.Formatter) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+p.MonthYear, true)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	amount := func(v float64) string {
		return "NGN " + formatter.Format(decimal.NewFromFloat(v), money.Options{
			MinFractionDigits: 2,
			MaxFractionDigits: 2,
			NoSymbol:          true,
		})
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(p.Organization), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr("Payslip for "+p.MonthYear), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	info := [][2]string{
		{"Employee", p.EmployeeName},
		{"Employee ID", p.EmployeeID},
		{"Department", p.Department},
		{"Pay Period", p.PayPeriod},
	}
	for _, row := range info {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section := func(title string, lines []LineResponse, totalLabel string, total float64) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(0, 8, title, "B", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, l := range lines {
			pdf.CellFormat(120, 7, tr(l.Description), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, amount(l.Amount), "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 7, totalLabel, "T", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, amount(total), "T", 1, "R", false, 0, "")
		pdf.Ln(3)
	}

	section("Earnings", p.Earnings, "Gross Earnings", p.GrossEarnings)
	section("Deductions", p.Deductions, "Total Deductions", p.TotalDeductions)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(120, 10, "Net Salary", "TB", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, amount(p.NetSalary), "TB", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
