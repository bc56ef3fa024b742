package domain

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("access forbidden")
	ErrTokenNotFound    = errors.New("token not found")
)
