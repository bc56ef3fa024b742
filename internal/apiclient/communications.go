package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// CommunicationsAPI covers customer communication records.
type CommunicationsAPI struct {
	client *Client
}

// List returns communication records, filtered to one room when roomID is
// non-zero.
func (c *CommunicationsAPI) List(ctx context.Context, roomID int) (*Response, error) {
	return c.client.get(ctx, "/communications/", "/communications/", roomFilter(roomID))
}

func (c *CommunicationsAPI) Create(ctx context.Context, comm any) (*Response, error) {
	return c.client.sendJSON(ctx, http.MethodPost, "/communications/", "/communications/", nil, comm)
}

// SetImplemented marks whether the customer's request has been carried out.
func (c *CommunicationsAPI) SetImplemented(ctx context.Context, commID int, implemented bool) (*Response, error) {
	body := struct {
		IsImplemented bool `json:"is_implemented"`
	}{implemented}
	return c.client.sendJSON(ctx, http.MethodPut, "/communications/{id}",
		fmt.Sprintf("/communications/%d", commID), nil, body)
}
