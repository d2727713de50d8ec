package fantasy_api_client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mcdev12/gridiron/go/clients"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// Login exchanges credentials for an access token
func (c *FantasyApiClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.SendJSON(ctx, http.MethodPost, LoginEndpoint, req, &resp, clients.WithBearerToken("")); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("failed to login: response carried no access token")
	}
	return &resp, nil
}

// Register creates a new account
func (c *FantasyApiClient) Register(ctx context.Context, req models.RegisterRequest) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.SendJSON(ctx, http.MethodPost, RegisterEndpoint, req, &user, clients.WithBearerToken("")); err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	return &user, nil
}

// FetchProfile returns the profile of the user owning token
func (c *FantasyApiClient) FetchProfile(ctx context.Context, token string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.GetJSON(ctx, MeEndpoint, &user, clients.WithBearerToken(token)); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the current user
func (c *FantasyApiClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.SendJSON(ctx, http.MethodPut, MeEndpoint, req, &user); err != nil {
		return nil, fmt.Errorf("failed to update current user: %w", err)
	}
	return &user, nil
}
