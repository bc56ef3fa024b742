package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// CustomersAPI covers the customer attached to a room.
type CustomersAPI struct {
	client *Client
}

func (c *CustomersAPI) GetByRoom(ctx context.Context, roomID int) (*Response, error) {
	return c.client.get(ctx, "/customers/room/{room_id}", fmt.Sprintf("/customers/room/%d", roomID), nil)
}

func (c *CustomersAPI) Create(ctx context.Context, customer any) (*Response, error) {
	return c.client.sendJSON(ctx, http.MethodPost, "/customers/", "/customers/", nil, customer)
}

func (c *CustomersAPI) Update(ctx context.Context, customerID int, customer any) (*Response, error) {
	return c.client.sendJSON(ctx, http.MethodPut, "/customers/{id}",
		fmt.Sprintf("/customers/%d", customerID), nil, customer)
}

func (c *CustomersAPI) Delete(ctx context.Context, customerID int) (*Response, error) {
	return c.client.delete(ctx, "/customers/{id}", fmt.Sprintf("/customers/%d", customerID))
}
