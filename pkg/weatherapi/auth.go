package weatherapi

import (
	"context"
	"net/http"

	"github.com/me/skywarn/pkg/model"
)

// Login exchanges credentials for a token and the user profile.
// It does not persist anything; that is the session layer's job.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account and returns a token and the user profile.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
