package profile

import (
	"context"
	"sync"

	"go-ess/internal/upstream"
)

type Country struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type User struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Firstname     string  `json:"firstname"`
	Lastname      string  `json:"lastname"`
	BankID        string  `json:"bankId"`
	AccountNumber string  `json:"accountNumber"`
	Country       Country `json:"country"`
}

// Reader is the read-only view handed to every feature.
type Reader interface {
	Current(ctx context.Context, userID string) (User, error)
}

// Writer is only given to the account settings flow and the session
// bootstrap.
type Writer interface {
	Reader
	Save(ctx context.Context, user User) error
	Forget(userID string)
}

type Fetcher interface {
	GetMe(ctx context.Context) (upstream.User, error)
}

// Store caches one profile per user and loads it from users/me on first
// access.
type Store struct {
	mu      sync.RWMutex
	users   map[string]User
	fetcher Fetcher
}

func NewStore(fetcher Fetcher) *Store {
	return &Store{
		users:   make(map[string]User),
		fetcher: fetcher,
	}
}

func (s *Store) Current(ctx context.Context, userID string) (User, error) {
	s.mu.RLock()
	u, ok := s.users[userID]
	s.mu.RUnlock()
	if ok {
		return u, nil
	}

	remote, err := s.fetcher.GetMe(ctx)
	if err != nil {
		return User{}, err
	}

	u = FromUpstream(remote)
	if u.ID == "" {
		u.ID = userID
	}

	s.mu.Lock()
	// A concurrent Save wins over the bootstrap copy.
	if existing, ok := s.users[userID]; ok {
		s.mu.Unlock()
		return existing, nil
	}
	s.users[userID] = u
	s.mu.Unlock()

	return u, nil
}

func (s *Store) Save(_ context.Context, user User) error {
	s.mu.Lock()
	s.users[user.ID] = user
	s.mu.Unlock()
	return nil
}

func (s *Store) Forget(userID string) {
	s.mu.Lock()
	delete(s.users, userID)
	s.mu.Unlock()
}

func FromUpstream(u upstream.User) User {
	out := User{
		ID:            u.ID,
		Email:         u.Email,
		Firstname:     u.Firstname,
		Lastname:      u.Lastname,
		BankID:        u.BankID,
		AccountNumber: u.AccountNumber,
	}
	if u.Country != nil {
		out.Country = Country{
			ID:       u.Country.ID,
			Name:     u.Country.Name,
			Currency: u.Country.Currency,
		}
	}
	return out
}
