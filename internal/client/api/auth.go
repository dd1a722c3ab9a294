package api

import (
	"context"
	"net/http"

	"github.com/Fury174k/pharmstock/internal/client/models"
)

// Login exchanges credentials for a bearer token or an access/refresh pair.
// Sent unauthenticated: there is no credential yet.
func (c *RESTClient) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login/", body, &resp, WithoutAuth()); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the issued token together with the
// created user profile.
func (c *RESTClient) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register/", body, &resp, WithoutAuth()); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetUser fetches the profile of the currently authenticated user.
func (c *RESTClient) GetUser(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/user/", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
