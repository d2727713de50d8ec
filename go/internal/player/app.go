package player

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mcdev12/gridiron/go/internal/apierr"
	"github.com/mcdev12/gridiron/go/internal/audit"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/session"
	"github.com/mcdev12/gridiron/go/internal/validation"
	"github.com/rs/zerolog/log"
)

// MinNameLength is the shortest accepted player name
const MinNameLength = 2

// PlayerClient defines what the app layer needs from the backend
type PlayerClient interface {
	CreatePlayer(ctx context.Context, req models.PlayerCreateRequest) (*models.Player, error)
	UploadPlayer(ctx context.Context, name string, position models.Position, teamID int64, imagePath string) (*models.Player, error)
	BatchUploadPlayers(ctx context.Context, path string) (*models.BatchUploadResult, error)
}

// Identity exposes the current session
type Identity interface {
	Snapshot() session.Session
}

// CreatePlayerForm is the player creation form. Exactly one of ImageURL and
// ImagePath is needed.
type CreatePlayerForm struct {
	Name      string
	Position  models.Position
	TeamID    int64
	ImageURL  string
	ImagePath string
}

var createMessages = apierr.Messages{
	Conflict:      "A player with that name already exists on this team.",
	Unprocessable: apierr.DefaultUnprocessable,
	Forbidden:     "Only administrators can create players.",
	Fallback:      "Could not create the player.",
}

var batchMessages = apierr.Messages{
	Forbidden: "Only administrators can upload players.",
	Fallback:  "Could not upload the file.",
}

// App handles player business logic
type App struct {
	client   PlayerClient
	identity Identity
	validate *validation.Validator
	emitter  *audit.Emitter
}

// NewApp creates a new player App
func NewApp(client PlayerClient, identity Identity, emitter *audit.Emitter) *App {
	return &App{
		client:   client,
		identity: identity,
		validate: validation.New(),
		emitter:  emitter,
	}
}

// CreatePlayer creates a new player with validation
func (a *App) CreatePlayer(ctx context.Context, form CreatePlayerForm) (*models.Player, error) {
	snap := a.identity.Snapshot()
	if err := session.RequireRole(snap, models.RoleAdmin); err != nil {
		return nil, err
	}

	req, err := a.validateCreatePlayerForm(form)
	if err != nil {
		return nil, err
	}

	var player *models.Player
	if form.ImagePath != "" {
		player, err = a.client.UploadPlayer(ctx, req.Name, req.Position, req.TeamID, form.ImagePath)
	} else {
		player, err = a.client.CreatePlayer(ctx, req)
	}
	if err != nil {
		log.Warn().Err(err).Str("name", req.Name).Msg("failed to create player")
		return nil, apierr.Translate(err, createMessages)
	}

	log.Info().Int64("player_id", player.ID).Str("name", player.Name).Str("position", string(player.Position)).Msg("created player")
	a.emitter.Emit(ctx, audit.EventPlayerCreated, snap.User.ID, map[string]string{
		"player_id": strconv.FormatInt(player.ID, 10),
		"team_id":   strconv.FormatInt(player.TeamID, 10),
	})
	return player, nil
}

// PreviewBatch reads a batch file so it can be reviewed before BatchUpload
func (a *App) PreviewBatch(path string) ([]Preview, error) {
	players, err := ReadBatch(path)
	if err != nil {
		return nil, batchError(err)
	}
	return players, nil
}

// BatchUpload previews the batch file at path and uploads it
func (a *App) BatchUpload(ctx context.Context, path string) (*models.BatchUploadResult, error) {
	snap := a.identity.Snapshot()
	if err := session.RequireRole(snap, models.RoleAdmin); err != nil {
		return nil, err
	}

	players, err := a.PreviewBatch(path)
	if err != nil {
		return nil, err
	}

	result, err := a.client.BatchUploadPlayers(ctx, path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to upload player batch")
		return nil, apierr.Translate(err, batchMessages)
	}
	if result.Message == "" {
		result.Message = "Players uploaded successfully."
	}

	log.Info().Int("players", len(players)).Str("path", path).Msg("uploaded player batch")
	a.emitter.Emit(ctx, audit.EventPlayersBatchAdded, snap.User.ID, map[string]string{
		"players": strconv.Itoa(len(players)),
	})
	return result, nil
}

// validateCreatePlayerForm validates create player form
func (a *App) validateCreatePlayerForm(form CreatePlayerForm) (models.PlayerCreateRequest, error) {
	req := models.PlayerCreateRequest{
		Name:     strings.TrimSpace(form.Name),
		Position: models.Position(strings.ToUpper(strings.TrimSpace(string(form.Position)))),
		TeamID:   form.TeamID,
		ImageURL: strings.TrimSpace(form.ImageURL),
	}

	if utf8.RuneCountInString(req.Name) < MinNameLength {
		return req, apierr.Validationf("Player name must be at least %d characters.", MinNameLength)
	}
	if !req.Position.Valid() {
		return req, apierr.Validationf("Position must be one of %s.", positionList())
	}
	if req.TeamID <= 0 {
		return req, apierr.Validation("Select the player's team.")
	}

	switch {
	case form.ImagePath != "" && req.ImageURL != "":
		return req, apierr.Validation("Provide either an image file or an image URL, not both.")
	case form.ImagePath != "":
		info, err := os.Stat(form.ImagePath)
		if err != nil || info.IsDir() {
			return req, apierr.Validationf("Image file %s cannot be read.", form.ImagePath)
		}
		return req, nil
	case req.ImageURL == "":
		return req, apierr.Validation("An image file or image URL is required.")
	}

	if err := a.validate.Struct(req); err != nil {
		return req, apierr.Validation(err.Error())
	}
	return req, nil
}

func batchError(err error) error {
	if errors.Is(err, ErrNotArray) || errors.Is(err, ErrEmptyBatch) {
		msg := err.Error()
		return apierr.Validation(strings.ToUpper(msg[:1]) + msg[1:] + ".")
	}
	return &apierr.Error{Kind: apierr.KindValidation, Message: "Could not read the batch file.", Err: err}
}

func positionList() string {
	names := make([]string, len(models.Positions))
	for i, p := range models.Positions {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
