package leagues

import (
	"context"
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

// Limits of the league creation form
const (
	MaxLeagueName        = 100
	MaxLeagueDescription = 1000
	MinCommissionerTeam  = 2
)

// CreateApp handles league creation
type CreateApp struct {
	client   CreateClient
	identity Identity
	validate *validation.Validator
	emitter  *audit.Emitter
}

// NewCreateApp creates a new league CreateApp
func NewCreateApp(client CreateClient, identity Identity, emitter *audit.Emitter) *CreateApp {
	return &CreateApp{
		client:   client,
		identity: identity,
		validate: validation.New(),
		emitter:  emitter,
	}
}

// CreateLeague validates form and creates the league in the current season,
// together with the commissioner's fantasy team
func (a *CreateApp) CreateLeague(ctx context.Context, form CreateLeagueForm) (*models.LeagueCreated, error) {
	snap := a.identity.Snapshot()
	if err := session.RequireAuthenticated(snap); err != nil {
		return nil, err
	}

	req, err := a.buildCreateRequest(form)
	if err != nil {
		return nil, err
	}

	league, err := a.client.CreateLeague(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("name", req.Name).Msg("failed to create league")
		return nil, apierr.Translate(err, createMessages)
	}

	log.Info().Int64("league_id", league.ID).Str("name", league.Name).Int("max_teams", league.MaxTeams).Msg("created league")
	a.emitter.Emit(ctx, audit.EventLeagueCreated, snap.User.ID, map[string]string{
		"league_id": formatID(league.ID),
		"max_teams": strconv.Itoa(league.MaxTeams),
	})
	return league, nil
}

// buildCreateRequest validates create league form
func (a *CreateApp) buildCreateRequest(form CreateLeagueForm) (models.LeagueCreateRequest, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return models.LeagueCreateRequest{}, apierr.Validation("League name is required.")
	}
	if utf8.RuneCountInString(name) > MaxLeagueName {
		return models.LeagueCreateRequest{}, apierr.Validationf("League name must be at most %d characters.", MaxLeagueName)
	}

	req := models.LeagueCreateRequest{
		Name:                name,
		MaxTeams:            form.MaxTeams,
		Password:            form.Password,
		PlayoffFormat:       form.PlayoffFormat,
		AllowDecimalScoring: form.AllowDecimalScoring,
		FantasyTeam: &models.FantasyTeamInput{
			Name: strings.TrimSpace(form.TeamName),
			City: strings.TrimSpace(form.TeamCity),
		},
	}
	if description := strings.TrimSpace(form.Description); description != "" {
		if utf8.RuneCountInString(description) > MaxLeagueDescription {
			return req, apierr.Validationf("Description must be at most %d characters.", MaxLeagueDescription)
		}
		req.Description = &description
	}
	if image := strings.TrimSpace(form.TeamImageURL); image != "" {
		req.FantasyTeam.ImageURL = &image
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		return req, apierr.Validation(err.Error())
	}
	if utf8.RuneCountInString(req.FantasyTeam.Name) < MinCommissionerTeam {
		return req, apierr.Validationf("Team name must be at least %d characters.", MinCommissionerTeam)
	}
	if utf8.RuneCountInString(req.FantasyTeam.City) < MinCommissionerTeam {
		return req, apierr.Validationf("Team city must be at least %d characters.", MinCommissionerTeam)
	}
	if err := a.validate.Struct(req); err != nil {
		return req, apierr.Validation(err.Error())
	}
	return req, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
