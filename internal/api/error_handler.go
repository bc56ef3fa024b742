package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kekeqingke/Project-Dashboard/internal/api/handler"
	"github.com/kekeqingke/Project-Dashboard/internal/apiclient"
	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// errorResponse is the canonical error envelope for all console errors.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends callers without a valid session to the login page: browsers get a
//     302, scripts get a 401 naming the redirect target.
//   - Passes backend errors through with the backend's status and detail.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if isUnauthenticated(err) {
			if handler.WantsHTML(c) {
				_ = c.Redirect(http.StatusFound, handler.LoginPath)
				return
			}
			_ = c.JSON(http.StatusUnauthorized, errorResponse{
				Error:    "not authenticated",
				Redirect: handler.LoginPath,
			})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

// isUnauthenticated holds for a missing session and for any backend 401. By
// the time a backend 401 reaches here the session has already been reset.
func isUnauthenticated(err error) bool {
	return errors.Is(err, domain.ErrNotAuthenticated) || errors.Is(err, apiclient.ErrUnauthorized)
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, validation, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Detail
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		return apiErr.StatusCode, msg
	}

	switch {
	case errors.Is(err, apiclient.ErrTransport):
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend unreachable")
		return http.StatusBadGateway, "backend unreachable"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
