package document

import (
	"time"

	json "github.com/goccy/go-json"
)

// Collections used by the service.
const (
	CollectionReimbursements  = "reimbursements"
	CollectionSalaryAdvances  = "salary_advances"
	CollectionNotifications   = "notifications"
	CollectionAccounts        = "accounts"
	CollectionRentReliefClaim = "rent_relief_claims"
)

// Document is a schemaless record keyed by (collection, id) and owned by
// one user.
type Document struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	Collection string    `gorm:"primaryKey;size:64"`
	OwnerID    string    `gorm:"index;not null"`
	Data       []byte    `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (Document) TableName() string {
	return "documents"
}

// Decode unmarshals the document body into T.
func Decode[T any](doc Document) (T, error) {
	var out T
	err := json.Unmarshal(doc.Data, &out)
	return out, err
}

// DecodeAll decodes a list, stopping at the first malformed body.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := Decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
