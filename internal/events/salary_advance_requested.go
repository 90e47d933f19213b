package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SalaryAdvanceRequestedTopic = "ess.salary_advance.requested.v1"
	SalaryAdvanceRequestedType  = "salary_advance_requested"
)

type SalaryAdvanceRequestedEvent struct {
	EventType      string          `json:"event_type"`
	AdvanceID      string          `json:"advance_id"`
	UserID         string          `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	ProcessingFee  decimal.Decimal `json:"processing_fee"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
	OccurredAt     time.Time       `json:"occurred_at"`
}
