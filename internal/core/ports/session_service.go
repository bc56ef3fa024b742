package ports

import (
	"context"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// SessionService is the session as seen by the web console and the CLI.
type SessionService interface {
	Login(ctx context.Context, username, password string) domain.LoginResult
	Logout(ctx context.Context)
	RefreshCurrentUser(ctx context.Context) error
	Snapshot() domain.Session
}
