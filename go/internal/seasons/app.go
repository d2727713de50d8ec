package seasons

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/gridiron/go/internal/apierr"
	"github.com/mcdev12/gridiron/go/internal/audit"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/session"
	"github.com/mcdev12/gridiron/go/internal/validation"
	"github.com/rs/zerolog/log"
)

// MaxSeasonName is the maximum length of a season name
const MaxSeasonName = 100

// SeasonClient defines what the app layer needs from the backend
type SeasonClient interface {
	CreateSeason(ctx context.Context, req models.SeasonCreateRequest) (*models.Season, error)
	CurrentSeason(ctx context.Context) (*models.Season, error)
}

// Identity exposes the current session
type Identity interface {
	Snapshot() session.Session
}

// CreateSeasonForm is the season creation form. Weeks are generated from
// StartDate and WeekCount when left empty.
type CreateSeasonForm struct {
	Name        string
	Year        int
	StartDate   models.Date
	EndDate     models.Date
	Description string
	WeekCount   int
	IsCurrent   bool
	Weeks       []models.Week
}

var createMessages = apierr.Messages{
	Forbidden:     "Only administrators can create seasons.",
	Unprocessable: apierr.DefaultUnprocessable,
	Fallback:      "Could not create the season.",
}

// App handles season business logic
type App struct {
	client   SeasonClient
	identity Identity
	clock    clockwork.Clock
	validate *validation.Validator
	emitter  *audit.Emitter
}

// NewApp creates a new seasons App. A nil clock uses the real clock.
func NewApp(client SeasonClient, identity Identity, clock clockwork.Clock, emitter *audit.Emitter) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		client:   client,
		identity: identity,
		clock:    clock,
		validate: validation.New(),
		emitter:  emitter,
	}
}

// CreateSeason validates form, generates its weeks if needed and creates the season
func (a *App) CreateSeason(ctx context.Context, form CreateSeasonForm) (*models.Season, error) {
	snap := a.identity.Snapshot()
	if err := session.RequireRole(snap, models.RoleAdmin); err != nil {
		return nil, err
	}

	req, err := a.buildRequest(form)
	if err != nil {
		return nil, err
	}

	if req.IsCurrent {
		current, err := a.client.CurrentSeason(ctx)
		if err != nil {
			return nil, apierr.Translate(err, apierr.Messages{Fallback: "Could not check the current season."})
		}
		if current != nil {
			return nil, apierr.Validationf("%q is already the current season. Unset the current flag or change the existing season first.", current.Name)
		}
	}

	season, err := a.client.CreateSeason(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("name", req.Name).Msg("failed to create season")
		return nil, apierr.Translate(err, createMessages)
	}

	log.Info().Int64("season_id", season.ID).Str("name", season.Name).Int("weeks", len(req.Weeks)).Msg("created season")
	a.emitter.Emit(ctx, audit.EventSeasonCreated, snap.User.ID, map[string]string{
		"season_id": strconv.FormatInt(season.ID, 10),
		"weeks":     strconv.Itoa(len(req.Weeks)),
	})
	return season, nil
}

// buildRequest validates season creation form
func (a *App) buildRequest(form CreateSeasonForm) (models.SeasonCreateRequest, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return models.SeasonCreateRequest{}, apierr.Validation("Season name is required.")
	}
	if utf8.RuneCountInString(name) > MaxSeasonName {
		return models.SeasonCreateRequest{}, apierr.Validationf("Season name must be at most %d characters.", MaxSeasonName)
	}

	weeks := form.Weeks
	if len(weeks) == 0 {
		count := form.WeekCount
		if count == 0 {
			count = DefaultWeeks
		}
		generated, err := GenerateWeeks(form.StartDate, count)
		if err != nil {
			return models.SeasonCreateRequest{}, apierr.Validation(capitalize(err.Error()))
		}
		weeks = generated
	}

	if err := ValidateDates(form.StartDate, form.EndDate, weeks, a.clock.Now()); err != nil {
		return models.SeasonCreateRequest{}, apierr.Validation(capitalize(err.Error()))
	}

	year := form.Year
	if year == 0 {
		year = form.StartDate.Year()
	}

	req := models.SeasonCreateRequest{
		Name:      name,
		Year:      year,
		StartDate: form.StartDate,
		EndDate:   form.EndDate,
		NumWeeks:  len(weeks),
		WeekCount: len(weeks),
		IsCurrent: form.IsCurrent,
		Weeks:     weeks,
	}
	if description := strings.TrimSpace(form.Description); description != "" {
		req.Description = &description
	}

	if err := a.validate.Struct(req); err != nil {
		return req, apierr.Validation(err.Error())
	}
	return req, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:] + "."
}
