package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
	"github.com/kekeqingke/Project-Dashboard/internal/core/ports"
)

// Context keys set by RequireSession.
const (
	ContextUser = "user"
	ContextRole = "role"
)

// RequireSession rejects requests while the session is not authenticated and
// injects the current user and role into the context.
func RequireSession(session ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := session.Snapshot()
			if !snap.IsAuthenticated() {
				return domain.ErrNotAuthenticated
			}

			c.Set(ContextUser, snap.User)
			c.Set(ContextRole, snap.User.Role)

			return next(c)
		}
	}
}
