package fantasy_api_client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mcdev12/gridiron/go/clients"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// CreateSeason creates a season together with its weeks
func (c *FantasyApiClient) CreateSeason(ctx context.Context, req models.SeasonCreateRequest) (*models.Season, error) {
	var season models.Season
	if err := c.SendJSON(ctx, http.MethodPost, SeasonsEndpoint, req, &season); err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	return &season, nil
}

// ListSeasons returns every season
func (c *FantasyApiClient) ListSeasons(ctx context.Context) ([]models.Season, error) {
	var seasons []models.Season
	if err := c.GetJSON(ctx, SeasonsEndpoint, &seasons); err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	return seasons, nil
}

// CurrentSeason returns the season flagged as current, or nil when there is none
func (c *FantasyApiClient) CurrentSeason(ctx context.Context) (*models.Season, error) {
	var season models.Season
	err := c.GetJSON(ctx, CurrentSeasonEndpoint, &season)
	if err != nil {
		var apiErr *clients.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current season: %w", err)
	}
	return &season, nil
}
