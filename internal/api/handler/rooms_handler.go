package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

type createRoomRequest struct {
	BuildingUnit   string `json:"building_unit" validate:"required"`
	RoomNumber     string `json:"room_number" validate:"required"`
	Status         string `json:"status"`
	DeliveryStatus string `json:"delivery_status"`
	ContractStatus string `json:"contract_status"`
	LetterStatus   string `json:"letter_status"`
	PreLeakage     string `json:"pre_leakage"`
}

// ListRooms handles GET /api/rooms.
//
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Success      200  {array}   object
// @Failure      401  {object}  map[string]string
// @Router       /api/rooms [get]
func (h *BackendHandler) ListRooms(c echo.Context) error {
	resp, err := h.client.Rooms.List(c.Request().Context())
	return relay(c, resp, err)
}

// CreateRoom handles POST /api/rooms.
//
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        body  body      createRoomRequest  true  "Room"
// @Success      200   {object}  object
// @Failure      400   {object}  map[string]string
// @Router       /api/rooms [post]
func (h *BackendHandler) CreateRoom(c echo.Context) error {
	var req createRoomRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	resp, err := h.client.Rooms.Create(c.Request().Context(), domain.RoomCreate(req))
	return relay(c, resp, err)
}

// GetRoom handles GET /api/rooms/:id.
//
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        id   path      int  true  "Room ID"
// @Success      200  {object}  object
// @Failure      404  {object}  map[string]string
// @Router       /api/rooms/{id} [get]
func (h *BackendHandler) GetRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.client.Rooms.Get(c.Request().Context(), id)
	return relay(c, resp, err)
}

// DeleteRoom handles DELETE /api/rooms/:id. Admin only.
//
// @Summary      Delete a room
// @Tags         rooms
// @Param        id   path  int  true  "Room ID"
// @Success      200
// @Failure      403  {object}  map[string]string
// @Router       /api/rooms/{id} [delete]
func (h *BackendHandler) DeleteRoom(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.client.Rooms.Delete(c.Request().Context(), id)
	return relay(c, resp, err)
}

// ExportRoomPDF handles GET /api/rooms/:id/export-pdf.
//
// @Summary      Download the room's communication report
// @Tags         rooms
// @Produce      application/pdf
// @Param        id   path  int  true  "Room ID"
// @Success      200  {file}  file
// @Router       /api/rooms/{id}/export-pdf [get]
func (h *BackendHandler) ExportRoomPDF(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.client.Rooms.ExportPDF(c.Request().Context(), id)
	return relay(c, resp, err)
}

// UpdateRoomStatus handles PUT /api/rooms/:id/:field?value=...
//
// @Summary      Update one room status field
// @Tags         rooms
// @Produce      json
// @Param        id     path   int     true   "Room ID"
// @Param        field  path   string  true   "delivery-status, contract-status, letter-status, pre-leakage or expected-delivery-date"
// @Param        value  query  string  false  "New value"
// @Success      200    {object}  object
// @Failure      400    {object}  map[string]string
// @Router       /api/rooms/{id}/{field} [put]
func (h *BackendHandler) UpdateRoomStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	field := domain.RoomStatusField(c.Param("field"))
	if field.QueryParam() == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown room status field")
	}
	resp, err := h.client.Rooms.UpdateStatus(c.Request().Context(), id, field, c.QueryParam("value"))
	return relay(c, resp, err)
}
