package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// UsersAPI covers user administration and room assignments.
type UsersAPI struct {
	client *Client
}

func (u *UsersAPI) List(ctx context.Context) (*Response, error) {
	return u.client.get(ctx, "/users/", "/users/", nil)
}

func (u *UsersAPI) Create(ctx context.Context, user any) (*Response, error) {
	return u.client.sendJSON(ctx, http.MethodPost, "/users/", "/users/", nil, user)
}

func (u *UsersAPI) ResetPassword(ctx context.Context, userID int) (*Response, error) {
	return u.client.sendJSON(ctx, http.MethodPut, "/users/{id}/reset-password",
		fmt.Sprintf("/users/%d/reset-password", userID), nil, nil)
}

func (u *UsersAPI) Delete(ctx context.Context, userID int) (*Response, error) {
	return u.client.delete(ctx, "/users/{id}", fmt.Sprintf("/users/%d", userID))
}

func (u *UsersAPI) AssignRoom(ctx context.Context, userID, roomID int) (*Response, error) {
	return u.client.sendJSON(ctx, http.MethodPost, "/room-assignments/", "/room-assignments/", nil,
		domain.RoomAssignmentCreate{UserID: userID, RoomID: roomID})
}

func (u *UsersAPI) ListRoomAssignments(ctx context.Context) (*Response, error) {
	return u.client.get(ctx, "/room-assignments/", "/room-assignments/", nil)
}

func (u *UsersAPI) DeleteRoomAssignment(ctx context.Context, assignmentID int) (*Response, error) {
	return u.client.delete(ctx, "/room-assignments/{id}", fmt.Sprintf("/room-assignments/%d", assignmentID))
}
