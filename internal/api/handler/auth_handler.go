package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
	"github.com/kekeqingke/Project-Dashboard/internal/core/ports"
)

// LoginPath is where unauthenticated callers are sent.
const LoginPath = "/login"

const loginForm = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Project Dashboard - Login</title></head>
<body>
<form method="post" action="/login">
<label>Username <input name="username" autocomplete="username" required></label>
<label>Password <input name="password" type="password" autocomplete="current-password" required></label>
<button type="submit">Log in</button>
</form>
</body>
</html>
`

type AuthHandler struct {
	session ports.SessionService
}

func NewAuthHandler(session ports.SessionService) *AuthHandler {
	return &AuthHandler{session: session}
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=150"`
	Password string `json:"password" form:"password" validate:"required"`
}

type sessionResponse struct {
	State     domain.SessionState `json:"state"`
	User      *domain.User        `json:"user,omitempty"`
	Dashboard string              `json:"dashboard,omitempty"`
	ExpiresAt *time.Time          `json:"expires_at,omitempty"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	resp := sessionResponse{State: s.State, User: s.User, Dashboard: dashboardFor(s)}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt
		resp.ExpiresAt = &exp
	}
	return resp
}

// dashboardFor names the landing dashboard of the session's role.
func dashboardFor(s domain.Session) string {
	switch {
	case !s.IsAuthenticated():
		return ""
	case s.IsAdmin():
		return "admin"
	case s.IsCustomerAmbassador():
		return "customer-ambassador"
	case s.IsEngineer():
		return "engineer"
	}
	return ""
}

// Home handles GET /.
//
// @Summary      Current session state and landing dashboard
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       / [get]
func (h *AuthHandler) Home(c echo.Context) error {
	snap := h.session.Snapshot()
	if !snap.IsAuthenticated() && WantsHTML(c) {
		return c.Redirect(http.StatusFound, LoginPath)
	}
	return c.JSON(http.StatusOK, toSessionResponse(snap))
}

// LoginPage handles GET /login, the entry point unauthenticated callers are
// redirected to.
//
// @Summary      Login entry point
// @Tags         auth
// @Produce      html
// @Success      200  {string}  string
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if WantsHTML(c) {
		return c.HTML(http.StatusOK, loginForm)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "POST username and password to " + LoginPath,
	})
}

// Login handles POST /login with a form or JSON body.
//
// @Summary      Log in against the backend
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res := h.session.Login(c.Request().Context(), req.Username, req.Password)
	if !res.Success {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": res.Message})
	}

	if WantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.JSON(http.StatusOK, toSessionResponse(h.session.Snapshot()))
}

// Logout handles POST /logout. It succeeds in any session state.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	if WantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, LoginPath)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /me. The user is re-fetched so a revoked token is noticed.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	if err := h.session.RefreshCurrentUser(c.Request().Context()); err != nil {
		return err
	}
	snap := h.session.Snapshot()
	if !snap.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, toSessionResponse(snap))
}
