package fantasy_api_client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mcdev12/gridiron/go/clients"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// CreatePlayer creates a player from a JSON payload
func (c *FantasyApiClient) CreatePlayer(ctx context.Context, req models.PlayerCreateRequest) (*models.Player, error) {
	var player models.Player
	if err := c.SendJSON(ctx, http.MethodPost, PlayersEndpoint, req, &player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return &player, nil
}

// UploadPlayer creates a player with an image file
func (c *FantasyApiClient) UploadPlayer(ctx context.Context, name string, position models.Position, teamID int64, imagePath string) (*models.Player, error) {
	fields := map[string]string{
		"name":     name,
		"position": string(position),
		"team_id":  strconv.FormatInt(teamID, 10),
	}

	var player models.Player
	if err := c.PostMultipart(ctx, PlayerUploadEndpoint, fields, &clients.FilePart{Field: ImageField, Path: imagePath}, &player); err != nil {
		return nil, fmt.Errorf("failed to upload player: %w", err)
	}
	return &player, nil
}

// BatchUploadPlayers uploads a JSON file describing many players
func (c *FantasyApiClient) BatchUploadPlayers(ctx context.Context, path string) (*models.BatchUploadResult, error) {
	var result models.BatchUploadResult
	if err := c.PostMultipart(ctx, PlayerBatchUploadEndpoint, nil, &clients.FilePart{Field: FileField, Path: path}, &result); err != nil {
		return nil, fmt.Errorf("failed to batch upload players: %w", err)
	}
	return &result, nil
}
