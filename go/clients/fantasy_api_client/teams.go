package fantasy_api_client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mcdev12/gridiron/go/clients"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// ListTeams lists teams, optionally filtered by text, activity and owner
func (c *FantasyApiClient) ListTeams(ctx context.Context, params models.TeamListParams) ([]models.Team, error) {
	query := map[string]string{"q": params.Query}
	if params.Active != nil {
		query["active"] = strconv.FormatBool(*params.Active)
	}
	if params.UserID != 0 {
		query["user_id"] = strconv.FormatInt(params.UserID, 10)
	}

	var teams []models.Team
	if err := c.GetJSON(ctx, TeamsEndpoint+clients.QueryString(query), &teams); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// GetTeam returns a team by ID
func (c *FantasyApiClient) GetTeam(ctx context.Context, id int64) (*models.Team, error) {
	var team models.Team
	if err := c.GetJSON(ctx, fmt.Sprintf(TeamEndpoint, id), &team); err != nil {
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return &team, nil
}

// CreateTeam creates a team from a JSON payload
func (c *FantasyApiClient) CreateTeam(ctx context.Context, req models.TeamCreateRequest) (*models.Team, error) {
	var team models.Team
	if err := c.SendJSON(ctx, http.MethodPost, TeamsEndpoint, req, &team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return &team, nil
}

// UploadTeam creates a team with an image file
func (c *FantasyApiClient) UploadTeam(ctx context.Context, name, city, imagePath string) (*models.Team, error) {
	fields := map[string]string{"name": name, "city": city}

	var team models.Team
	if err := c.PostMultipart(ctx, TeamUploadEndpoint, fields, &clients.FilePart{Field: ImageField, Path: imagePath}, &team); err != nil {
		return nil, fmt.Errorf("failed to upload team: %w", err)
	}
	return &team, nil
}
