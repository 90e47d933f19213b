package reimbursement

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeTravel   = "Travel"
	TypeMeals    = "Meals"
	TypeSupplies = "Supplies"
	TypeOther    = "Other"

	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"

	ReferencePrefix = "RB"
)

var Types = []string{TypeTravel, TypeMeals, TypeSupplies, TypeOther}

func validType(t string) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

// Reimbursement is stored as a document body; ID comes from the document.
type Reimbursement struct {
	ID          string          `json:"id,omitempty"`
	Reference   string          `json:"reference"`
	UserID      string          `json:"userId"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expenseDate"`
	Description string          `json:"description"`
	ReceiptName string          `json:"receiptName"`
	Status      string          `json:"status"`
	Date        time.Time       `json:"date"`
}
