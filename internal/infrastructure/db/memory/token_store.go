package memory

import (
	"context"
	"sync"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// TokenStore keeps the token in process memory. Nothing survives a restart.
type TokenStore struct {
	mu    sync.Mutex
	token string
}

// NewTokenStore returns a TokenStore, optionally seeded with a token.
func NewTokenStore(initial string) *TokenStore {
	return &TokenStore{token: initial}
}

func (s *TokenStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", domain.ErrTokenNotFound
	}
	return s.token, nil
}

func (s *TokenStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) Delete(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
