package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var ErrMissingToken = errors.New("login response carried no token")

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return "", err
	}
	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", req, nil)
}

// ResetPassword asks the backend to send a reset link to email.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/password-reset", map[string]string{"email": email}, nil)
}
