package apiclient

import (
	"context"
	"fmt"
	"net/url"
)

// AdminAPI covers the administrator summary and room content resets.
type AdminAPI struct {
	client *Client
}

// Summary returns per-room aggregates, filtered to one building unit when
// buildingUnit is non-empty.
func (a *AdminAPI) Summary(ctx context.Context, buildingUnit string) (*Response, error) {
	var query url.Values
	if buildingUnit != "" {
		query = url.Values{"building_unit": []string{buildingUnit}}
	}
	return a.client.get(ctx, "/admin/summary", "/admin/summary", query)
}

// ClearRoomContent wipes one room's records and customer data. The room and
// its assignments stay.
func (a *AdminAPI) ClearRoomContent(ctx context.Context, roomID int) (*Response, error) {
	return a.client.delete(ctx, "/admin/rooms/{id}/clear-content", fmt.Sprintf("/admin/rooms/%d/clear-content", roomID))
}

// ClearAllRoomContent does ClearRoomContent for every room.
func (a *AdminAPI) ClearAllRoomContent(ctx context.Context) (*Response, error) {
	return a.client.delete(ctx, "/admin/rooms/clear-all-content", "/admin/rooms/clear-all-content")
}
