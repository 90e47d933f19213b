package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ReimbursementSubmittedTopic = "ess.reimbursement.submitted.v1"
	ReimbursementSubmittedType  = "reimbursement_submitted"
)

type ReimbursementSubmittedEvent struct {
	EventType       string          `json:"event_type"`
	ReimbursementID string          `json:"reimbursement_id"`
	Reference       string          `json:"reference"`
	UserID          string          `json:"user_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	OccurredAt      time.Time       `json:"occurred_at"`
}
