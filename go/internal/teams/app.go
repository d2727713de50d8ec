package teams

import (
	"context"
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

// MinNameLength applies to both team name and city
const MinNameLength = 2

// TeamsClient defines what the app layer needs from the backend
type TeamsClient interface {
	CreateTeam(ctx context.Context, req models.TeamCreateRequest) (*models.Team, error)
	UploadTeam(ctx context.Context, name, city, imagePath string) (*models.Team, error)
	ListTeams(ctx context.Context, params models.TeamListParams) ([]models.Team, error)
}

// Identity exposes the current session
type Identity interface {
	Snapshot() session.Session
}

var createMessages = apierr.Messages{
	Conflict:      "A team with that name already exists.",
	Unprocessable: apierr.DefaultUnprocessable,
	Forbidden:     "You are not permitted to create teams.",
	Fallback:      "Could not create the team.",
}

// App handles teams business logic
type App struct {
	client   TeamsClient
	identity Identity
	validate *validation.Validator
	emitter  *audit.Emitter
}

// NewApp creates a new teams App
func NewApp(client TeamsClient, identity Identity, emitter *audit.Emitter) *App {
	return &App{
		client:   client,
		identity: identity,
		validate: validation.New(),
		emitter:  emitter,
	}
}

// CreateTeam creates a new team with validation
func (a *App) CreateTeam(ctx context.Context, form CreateTeamForm) (*models.Team, error) {
	snap := a.identity.Snapshot()
	if err := session.RequireAuthenticated(snap); err != nil {
		return nil, err
	}

	req, err := a.validateCreateTeamForm(form)
	if err != nil {
		return nil, err
	}

	var team *models.Team
	if form.ImagePath != "" {
		team, err = a.client.UploadTeam(ctx, req.Name, req.City, form.ImagePath)
	} else {
		team, err = a.client.CreateTeam(ctx, req)
	}
	if err != nil {
		log.Warn().Err(err).Str("name", req.Name).Msg("failed to create team")
		return nil, apierr.Translate(err, createMessages)
	}

	log.Info().Int64("team_id", team.ID).Str("name", team.Name).Msg("created team")
	a.emitter.Emit(ctx, audit.EventTeamCreated, snap.User.ID, map[string]string{
		"team_id": strconv.FormatInt(team.ID, 10),
	})
	return team, nil
}

// ListTeams lists teams matching filter
func (a *App) ListTeams(ctx context.Context, filter TeamFilter) ([]models.Team, error) {
	params := models.TeamListParams{Query: strings.TrimSpace(filter.Query)}
	if filter.ActiveOnly {
		active := true
		params.Active = &active
	}
	if filter.Mine {
		snap := a.identity.Snapshot()
		if err := session.RequireAuthenticated(snap); err != nil {
			return nil, err
		}
		params.UserID = snap.User.ID
	}

	teams, err := a.client.ListTeams(ctx, params)
	if err != nil {
		return nil, apierr.Translate(err, apierr.Messages{Fallback: "Could not load teams."})
	}
	return teams, nil
}

// validateCreateTeamForm validates create team form
func (a *App) validateCreateTeamForm(form CreateTeamForm) (models.TeamCreateRequest, error) {
	req := models.TeamCreateRequest{
		Name: strings.TrimSpace(form.Name),
		City: strings.TrimSpace(form.City),
	}
	if utf8.RuneCountInString(req.Name) < MinNameLength {
		return req, apierr.Validationf("Team name must be at least %d characters.", MinNameLength)
	}
	if utf8.RuneCountInString(req.City) < MinNameLength {
		return req, apierr.Validationf("City must be at least %d characters.", MinNameLength)
	}
	if image := strings.TrimSpace(form.ImageURL); image != "" {
		req.ImageURL = &image
	}

	if form.ImagePath != "" {
		info, err := os.Stat(form.ImagePath)
		if err != nil || info.IsDir() {
			return req, apierr.Validationf("Image file %s cannot be read.", form.ImagePath)
		}
	}

	if err := a.validate.Struct(req); err != nil {
		return req, apierr.Validation(err.Error())
	}
	return req, nil
}
