package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// RoomsAPI covers room listings and per-room state.
type RoomsAPI struct {
	client *Client
}

func (r *RoomsAPI) List(ctx context.Context) (*Response, error) {
	return r.client.get(ctx, "/rooms/", "/rooms/", nil)
}

func (r *RoomsAPI) Create(ctx context.Context, room any) (*Response, error) {
	return r.client.sendJSON(ctx, http.MethodPost, "/rooms/", "/rooms/", nil, room)
}

func (r *RoomsAPI) Get(ctx context.Context, roomID int) (*Response, error) {
	return r.client.get(ctx, "/rooms/{id}", fmt.Sprintf("/rooms/%d", roomID), nil)
}

func (r *RoomsAPI) Delete(ctx context.Context, roomID int) (*Response, error) {
	return r.client.delete(ctx, "/rooms/{id}", fmt.Sprintf("/rooms/%d", roomID))
}

// ExportPDF downloads the room's communication report. The body is the raw
// PDF document.
func (r *RoomsAPI) ExportPDF(ctx context.Context, roomID int) (*Response, error) {
	return r.client.do(ctx, call{
		method: http.MethodGet,
		route:  "/rooms/{id}/export-pdf",
		path:   fmt.Sprintf("/rooms/%d/export-pdf", roomID),
		accept: "application/pdf",
	})
}

// UpdateStatus sets one status field of a room. An empty value is sent as is;
// for the expected delivery date it clears the date.
func (r *RoomsAPI) UpdateStatus(ctx context.Context, roomID int, field domain.RoomStatusField, value string) (*Response, error) {
	param := field.QueryParam()
	if param == "" {
		return nil, fmt.Errorf("unknown room status field %q", field)
	}
	query := url.Values{}
	query.Set(param, value)
	return r.client.sendJSON(ctx, http.MethodPut, "/rooms/{id}/"+string(field),
		fmt.Sprintf("/rooms/%d/%s", roomID, field), query, nil)
}
