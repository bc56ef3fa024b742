package ports

import (
	"context"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// AuthAPI is the slice of the backend the session store depends on.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*domain.TokenGrant, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
}
