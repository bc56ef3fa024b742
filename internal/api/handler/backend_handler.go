package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kekeqingke/Project-Dashboard/internal/apiclient"
)

// BackendHandler relays the console's /api routes to the backend through the
// API client. Bodies are passed through as the backend sent them; errors go
// to the HTTP error handler.
type BackendHandler struct {
	client *apiclient.Client
}

func NewBackendHandler(client *apiclient.Client) *BackendHandler {
	return &BackendHandler{client: client}
}

// relay writes a backend response back to the caller.
func relay(c echo.Context, resp *apiclient.Response, err error) error {
	if err != nil {
		return err
	}
	if len(resp.Body) == 0 {
		return c.NoContent(resp.StatusCode)
	}
	ct := resp.ContentType()
	if ct == "" {
		ct = echo.MIMEApplicationJSONCharsetUTF8
	}
	if cd := resp.Header.Get(echo.HeaderContentDisposition); cd != "" {
		c.Response().Header().Set(echo.HeaderContentDisposition, cd)
	}
	return c.Blob(resp.StatusCode, ct, resp.Body)
}

// bindBody binds and validates a request payload.
func bindBody(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(v)
}
