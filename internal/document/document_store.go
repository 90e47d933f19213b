package document

import (
	"context"
	"database/sql"
	"errors"
	"time"

	documenterrors "go-ess/internal/document/errors"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Filter struct {
	OwnerID   string
	Limit     int
	OrderDesc bool
}

//go:generate mockgen -source=document_store.go -destination=mock/document_store_mock.go -package=mock
type Store interface {
	WithTx(tx *sql.Tx) Store
	List(ctx context.Context, collection string, filter Filter) ([]Document, error)
	GetByID(ctx context.Context, collection, id string) (Document, error)
	Add(ctx context.Context, collection, ownerID string, v any) (Document, error)
	Put(ctx context.Context, collection, id, ownerID string, v any) (Document, error)
	Update(ctx context.Context, collection, id string, v any) error
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

// WithTx binds the store to an outer *sql.Tx so document writes commit
// together with counters and outbox rows.
func (s *store) WithTx(tx *sql.Tx) Store {
	db := s.db.Session(&gorm.Session{
		Context:                context.Background(),
		SkipDefaultTransaction: true,
	})
	db.Statement.ConnPool = tx
	return &store{db: db}
}

func (s *store) List(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	order := "created_at ASC"
	if filter.OrderDesc {
		order = "created_at DESC"
	}

	q := s.db.WithContext(ctx).
		Scopes(collectionScope(collection), ownerScope(filter.OwnerID)).
		Order(order)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var docs []Document
	if err := q.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *store) GetByID(ctx context.Context, collection, id string) (Document, error) {
	var doc Document
	err := s.db.WithContext(ctx).
		Scopes(collectionScope(collection)).
		Where("id = ?", id).
		Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Document{}, documenterrors.ErrNotFound
	}
	return doc, err
}

// Add stores v under a fresh id. When v has an "id" field it is not
// touched; callers embed the returned id themselves.
func (s *store) Add(ctx context.Context, collection, ownerID string, v any) (Document, error) {
	return s.Put(ctx, collection, uuid.NewString(), ownerID, v)
}

// Put creates a document under a caller-chosen id. A second Put with the
// same id fails with ErrConflict.
func (s *store) Put(ctx context.Context, collection, id, ownerID string, v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, err
	}

	now := time.Now().UTC()
	doc := Document{
		ID:         id,
		Collection: collection,
		OwnerID:    ownerID,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return Document{}, mapWriteError(err)
	}
	return doc, nil
}

func (s *store) Update(ctx context.Context, collection, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Model(&Document{}).
		Scopes(collectionScope(collection)).
		Where("id = ?", id).
		Updates(map[string]any{
			"data":       data,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return mapWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return documenterrors.ErrNotFound
	}
	return nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return documenterrors.ErrConflict
	}
	return err
}
