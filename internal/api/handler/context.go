package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// ctxUser returns the user injected by the RequireSession middleware.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}

// paramID parses a positive integer path parameter.
func paramID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}

// queryRoomID parses the optional room_id filter; absent means 0.
func queryRoomID(c echo.Context) (int, error) {
	raw := c.QueryParam("room_id")
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "room_id must be an integer")
	}
	return id, nil
}

// WantsHTML reports whether the caller is a browser navigating pages rather
// than a script expecting JSON.
func WantsHTML(c echo.Context) bool {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) {
		return true
	}
	accept := req.Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMETextHTML) && !strings.Contains(accept, echo.MIMEApplicationJSON)
}
