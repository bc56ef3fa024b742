package ports

import "context"

// TokenStore persists the single bearer token under a fixed key.
// Load returns domain.ErrTokenNotFound when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// Pinger is implemented by token stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
