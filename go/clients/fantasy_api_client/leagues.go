package fantasy_api_client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mcdev12/gridiron/go/clients"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// SearchLeagues lists leagues matching filters. Empty filters return every league.
func (c *FantasyApiClient) SearchLeagues(ctx context.Context, filters models.LeagueSearchFilters) ([]models.LeagueSearchResult, error) {
	params := map[string]string{
		"name":   filters.Name,
		"status": string(filters.Status),
	}
	if filters.SeasonID != 0 {
		params["season_id"] = strconv.FormatInt(filters.SeasonID, 10)
	}

	var leagues []models.LeagueSearchResult
	if err := c.GetJSON(ctx, LeagueSearchEndpoint+clients.QueryString(params), &leagues); err != nil {
		return nil, fmt.Errorf("failed to search leagues: %w", err)
	}
	return leagues, nil
}

// JoinLeague submits a join request for leagueID
func (c *FantasyApiClient) JoinLeague(ctx context.Context, leagueID int64, req models.JoinLeagueRequest) (*models.JoinLeagueResponse, error) {
	var resp models.JoinLeagueResponse
	if err := c.SendJSON(ctx, http.MethodPost, fmt.Sprintf(LeagueJoinEndpoint, leagueID), req, &resp); err != nil {
		return nil, fmt.Errorf("failed to join league %d: %w", leagueID, err)
	}
	return &resp, nil
}

// CreateLeague creates a league with its commissioner fantasy team
func (c *FantasyApiClient) CreateLeague(ctx context.Context, req models.LeagueCreateRequest) (*models.LeagueCreated, error) {
	var created models.LeagueCreated
	if err := c.SendJSON(ctx, http.MethodPost, LeaguesEndpoint, req, &created); err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}
	return &created, nil
}
