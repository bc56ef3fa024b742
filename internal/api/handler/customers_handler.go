package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// bindObject decodes a JSON object body without touching path or query
// parameters; customer payloads are owned by the backend schema.
func bindObject(c echo.Context) (map[string]any, error) {
	fields := map[string]any{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &fields); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return fields, nil
}

// GetRoomCustomer handles GET /api/customers/room/:room_id.
//
// @Summary      Customer of a room
// @Tags         customers
// @Produce      json
// @Param        room_id  path      int  true  "Room ID"
// @Success      200      {object}  object
// @Failure      404      {object}  map[string]string
// @Router       /api/customers/room/{room_id} [get]
func (h *BackendHandler) GetRoomCustomer(c echo.Context) error {
	roomID, err := paramID(c, "room_id")
	if err != nil {
		return err
	}
	resp, err := h.client.Customers.GetByRoom(c.Request().Context(), roomID)
	return relay(c, resp, err)
}

// CreateCustomer handles POST /api/customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "Customer"
// @Success      200   {object}  object
// @Router       /api/customers [post]
func (h *BackendHandler) CreateCustomer(c echo.Context) error {
	body, err := bindObject(c)
	if err != nil {
		return err
	}
	resp, err := h.client.Customers.Create(c.Request().Context(), body)
	return relay(c, resp, err)
}

// UpdateCustomer handles PUT /api/customers/:id.
//
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      int     true  "Customer ID"
// @Param        body  body      object  true  "Fields to change"
// @Success      200   {object}  object
// @Router       /api/customers/{id} [put]
func (h *BackendHandler) UpdateCustomer(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	body, err := bindObject(c)
	if err != nil {
		return err
	}
	resp, err := h.client.Customers.Update(c.Request().Context(), id, body)
	return relay(c, resp, err)
}

// DeleteCustomer handles DELETE /api/customers/:id.
//
// @Summary      Delete a customer
// @Tags         customers
// @Param        id   path  int  true  "Customer ID"
// @Success      200
// @Router       /api/customers/{id} [delete]
func (h *BackendHandler) DeleteCustomer(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.client.Customers.Delete(c.Request().Context(), id)
	return relay(c, resp, err)
}
