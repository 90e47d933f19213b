package kafka

import "time"

// OutboxRecord is the ess_outbox_events table. The repository talks to it
// with plain SQL; the model only exists so the table can be migrated.
type OutboxRecord struct {
	ID            string     `gorm:"type:uuid;primaryKey"`
	RequestID     *string    `gorm:"size:64"`
	AggregateType string     `gorm:"size:64;not null"`
	AggregateID   string     `gorm:"size:64;not null"`
	EventType     string     `gorm:"size:128;not null"`
	Topic         string     `gorm:"size:255;not null"`
	Payload       []byte     `gorm:"type:jsonb;not null"`
	Status        string     `gorm:"size:16;not null;default:pending;index:idx_ess_outbox_pending,priority:1"`
	RetryCount    int        `gorm:"not null;default:0"`
	NextRetryAt   *time.Time `gorm:"index:idx_ess_outbox_pending,priority:2"`
	ErrorMessage  *string    `gorm:"size:500"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"not null;default:now()"`
	UpdatedAt     time.Time `gorm:"not null;default:now()"`
}

func (OutboxRecord) TableName() string {
	return "ess_outbox_events"
}
