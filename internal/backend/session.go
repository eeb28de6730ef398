package backend

import (
	"context"
	"net/http"

	"github.com/baabuu/storefront-web/internal/catalog"
)

// User is the account the catalog API reports for a token.
type User struct {
	ID          catalog.ID `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
}

// LoginResult is the token issued by the catalog API.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthStatus is the catalog API's view of the current token.
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
	User          User `json:"user"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, request{
		operation: "login",
		method:    http.MethodPost,
		endpoint:  "/auth/login/",
		body:      credentials{Username: username, Password: password},
	}, &out)
	return out, err
}

// Logout revokes the token on the context.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, request{
		operation: "logout",
		method:    http.MethodPost,
		endpoint:  "/auth/logout/",
	}, nil)
}

// CheckAuth reports whether the token on the context is still valid.
func (c *Client) CheckAuth(ctx context.Context) (AuthStatus, error) {
	var out AuthStatus
	err := c.do(ctx, request{
		operation: "check_auth",
		method:    http.MethodGet,
		endpoint:  "/auth/check/",
	}, &out)
	return out, err
}
