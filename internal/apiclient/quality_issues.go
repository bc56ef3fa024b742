package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// QualityIssuesAPI covers quality-issue tracking.
type QualityIssuesAPI struct {
	client *Client
}

// List returns quality issues, filtered to one room when roomID is non-zero.
func (q *QualityIssuesAPI) List(ctx context.Context, roomID int) (*Response, error) {
	return q.client.get(ctx, "/quality-issues/", "/quality-issues/", roomFilter(roomID))
}

func (q *QualityIssuesAPI) Create(ctx context.Context, issue any) (*Response, error) {
	return q.client.sendJSON(ctx, http.MethodPost, "/quality-issues/", "/quality-issues/", nil, issue)
}

func (q *QualityIssuesAPI) Accept(ctx context.Context, issueID int) (*Response, error) {
	return q.client.sendJSON(ctx, http.MethodPut, "/quality-issues/{id}/accept",
		fmt.Sprintf("/quality-issues/%d/accept", issueID), nil, nil)
}

// Update sends a partial update; the backend treats {"is_verified": true} as
// an acceptance.
func (q *QualityIssuesAPI) Update(ctx context.Context, issueID int, fields map[string]any) (*Response, error) {
	return q.client.sendJSON(ctx, http.MethodPut, "/quality-issues/{id}",
		fmt.Sprintf("/quality-issues/%d", issueID), nil, fields)
}

func roomFilter(roomID int) url.Values {
	if roomID == 0 {
		return nil
	}
	return url.Values{"room_id": []string{strconv.Itoa(roomID)}}
}
