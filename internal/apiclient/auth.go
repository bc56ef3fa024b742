package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
)

// TokenPath is the token endpoint. A 401 from it means rejected credentials
// rather than an expired session.
const TokenPath = "/token"

// AuthAPI covers token issuance and the current user.
type AuthAPI struct {
	client *Client
}

// Login exchanges credentials for a bearer token. The backend's OAuth2
// password flow only accepts form-encoded fields.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*domain.TokenGrant, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := a.client.do(ctx, call{
		method:      http.MethodPost,
		route:       TokenPath,
		path:        TokenPath,
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	})
	if err != nil {
		return nil, err
	}

	var grant domain.TokenGrant
	if err := resp.Decode(&grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

// CurrentUser fetches GET /users/me.
func (a *AuthAPI) CurrentUser(ctx context.Context) (*domain.User, error) {
	resp, err := a.client.get(ctx, "/users/me", "/users/me", nil)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := resp.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
