package counter

import "time"

// Counter is one row of ess_counters, keyed by (scope, counter_type).
type Counter struct {
	Scope       string    `gorm:"primaryKey;size:64"`
	CounterType string    `gorm:"primaryKey;size:64"`
	LastValue   int64     `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"not null;default:now()"`
}

func (Counter) TableName() string {
	return "ess_counters"
}
