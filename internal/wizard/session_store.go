package wizard

import (
	"context"
	"errors"
	"time"

	wizardErrors "go-ess/internal/wizard/errors"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	SessionKeyPrefix = "wizard:session:"
	SessionTTL       = 30 * time.Minute
	lockTTL          = 30 * time.Second
)

func GetSessionKey(id string) string {
	return SessionKeyPrefix + id
}

func getLockKey(id string) string {
	return SessionKeyPrefix + id + ":lock"
}

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	State     State     `json:"state"`
	UpdatedAt time.Time `json:"updatedAt"`
}

//go:generate mockgen -source=session_store.go -destination=mock/session_store_mock.go -package=mock
type SessionStore interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
	// Lock takes the per-session write lock; false means it is held.
	Lock(ctx context.Context, id string) (bool, error)
	Unlock(ctx context.Context, id string) error
}

type redisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb, ttl: SessionTTL}
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (Session, error) {
	raw, err := s.rdb.Get(ctx, GetSessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, wizardErrors.ErrSessionNotFound
	}
	if err != nil {
		return Session{}, err
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Save writes the session and restarts its TTL.
func (s *redisSessionStore) Save(ctx context.Context, session Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, GetSessionKey(session.ID), payload, s.ttl).Err()
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, GetSessionKey(id), getLockKey(id)).Err()
}

func (s *redisSessionStore) Lock(ctx context.Context, id string) (bool, error) {
	return s.rdb.SetNX(ctx, getLockKey(id), "locked", lockTTL).Result()
}

func (s *redisSessionStore) Unlock(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, getLockKey(id)).Err()
}
