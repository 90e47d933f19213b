package counter

import (
	"context"
	"database/sql"
	"fmt"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, scope string, counterType string) (int64, error)
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// GetNextValue atomically increments the (scope, type) counter and returns
// the new value, starting at 1.
func (r *repository) GetNextValue(ctx context.Context, scope string, counterType string) (int64, error) {
	query := `
INSERT INTO ess_counters (scope, counter_type, last_value, updated_at)
VALUES ($1, $2, 1, NOW())
ON CONFLICT (scope, counter_type) DO UPDATE
SET last_value = ess_counters.last_value + 1, updated_at = NOW()
RETURNING last_value
`

	var next int64
	if err := r.queryer().QueryRowContext(ctx, query, scope, counterType).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *repository) queryer() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Reference renders a counter value as PREFIX-000042.
func Reference(prefix string, value int64) string {
	return fmt.Sprintf("%s-%06d", prefix, value)
}
