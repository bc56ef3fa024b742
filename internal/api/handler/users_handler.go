package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

type createUserRequest struct {
	Username string      `json:"username" validate:"required,max=150"`
	Name     string      `json:"name" validate:"required"`
	Role     domain.Role `json:"role" validate:"oneof=admin customer_ambassador project_engineer maintenance_engineer"`
	Password string      `json:"password" validate:"required"`
}

type assignRoomRequest struct {
	UserID int `json:"user_id" validate:"gt=0"`
	RoomID int `json:"room_id" validate:"gt=0"`
}

// ListUsers handles GET /api/users. Admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   object
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *BackendHandler) ListUsers(c echo.Context) error {
	resp, err := h.client.Users.List(c.Request().Context())
	return relay(c, resp, err)
}

// CreateUser handles POST /api/users. Admin only.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User"
// @Success      200   {object}  object
// @Failure      400   {object}  map[string]string
// @Router       /api/users [post]
func (h *BackendHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	resp, err := h.client.Users.Create(c.Request().Context(), domain.UserCreate(req))
	return relay(c, resp, err)
}

// ResetUserPassword handles PUT /api/users/:id/reset-password. Admin only.
//
// @Summary      Reset a user's password to a new initial password
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  object
// @Router       /api/users/{id}/reset-password [put]
func (h *BackendHandler) ResetUserPassword(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.client.Users.ResetPassword(c.Request().Context(), id)
	return relay(c, resp, err)
}

// DeleteUser handles DELETE /api/users/:id. Admin only.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id   path  int  true  "User ID"
// @Success      200
// @Router       /api/users/{id} [delete]
func (h *BackendHandler) DeleteUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.client.Users.Delete(c.Request().Context(), id)
	return relay(c, resp, err)
}

// ListRoomAssignments handles GET /api/room-assignments. The backend scopes
// the list to the caller unless they are an admin.
//
// @Summary      List room assignments
// @Tags         users
// @Produce      json
// @Success      200  {array}  object
// @Router       /api/room-assignments [get]
func (h *BackendHandler) ListRoomAssignments(c echo.Context) error {
	resp, err := h.client.Users.ListRoomAssignments(c.Request().Context())
	return relay(c, resp, err)
}

// AssignRoom handles POST /api/room-assignments. Admin only.
//
// @Summary      Assign a room to a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      assignRoomRequest  true  "Assignment"
// @Success      200   {object}  object
// @Router       /api/room-assignments [post]
func (h *BackendHandler) AssignRoom(c echo.Context) error {
	var req assignRoomRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	resp, err := h.client.Users.AssignRoom(c.Request().Context(), req.UserID, req.RoomID)
	return relay(c, resp, err)
}

// DeleteRoomAssignment handles DELETE /api/room-assignments/:id. Admin only.
//
// @Summary      Remove a room assignment
// @Tags         users
// @Param        id   path  int  true  "Assignment ID"
// @Success      200
// @Router       /api/room-assignments/{id} [delete]
func (h *BackendHandler) DeleteRoomAssignment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.client.Users.DeleteRoomAssignment(c.Request().Context(), id)
	return relay(c, resp, err)
}

// AdminSummary handles GET /api/admin/summary. Admin only.
//
// @Summary      Per-room summary for administrators
// @Tags         admin
// @Produce      json
// @Param        building_unit  query     string  false  "Only rooms of this building unit"
// @Success      200            {array}   object
// @Router       /api/admin/summary [get]
func (h *BackendHandler) AdminSummary(c echo.Context) error {
	resp, err := h.client.Admin.Summary(c.Request().Context(), c.QueryParam("building_unit"))
	return relay(c, resp, err)
}

// ClearRoomContent handles DELETE /api/admin/rooms/:id/clear-content. Admin only.
//
// @Summary      Clear one room's records, keeping the room and its assignments
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Room ID"
// @Success      200  {object}  object
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/rooms/{id}/clear-content [delete]
func (h *BackendHandler) ClearRoomContent(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.client.Admin.ClearRoomContent(c.Request().Context(), id)
	return relay(c, resp, err)
}

// ClearAllRoomContent handles DELETE /api/admin/rooms/clear-all-content. Admin only.
//
// @Summary      Clear the records of every room
// @Tags         admin
// @Produce      json
// @Success      200  {object}  object
// @Router       /api/admin/rooms/clear-all-content [delete]
func (h *BackendHandler) ClearAllRoomContent(c echo.Context) error {
	resp, err := h.client.Admin.ClearAllRoomContent(c.Request().Context())
	return relay(c, resp, err)
}
