package seasons

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/gridiron/go/clients"
	"github.com/mcdev12/gridiron/go/internal/apierr"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticIdentity struct {
	s session.Session
}

func (i staticIdentity) Snapshot() session.Session { return i.s }

func asRole(role models.Role) staticIdentity {
	return staticIdentity{s: session.Session{
		Token: "tok",
		User:  &models.UserProfile{ID: 1, Role: role},
		State: session.StateAuthenticated,
	}}
}

type fakeSeasonClient struct {
	current    *models.Season
	currentErr error
	createErr  error
	created    *models.SeasonCreateRequest
}

func (f *fakeSeasonClient) CurrentSeason(context.Context) (*models.Season, error) {
	return f.current, f.currentErr
}

func (f *fakeSeasonClient) CreateSeason(_ context.Context, req models.SeasonCreateRequest) (*models.Season, error) {
	f.created = &req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Season{ID: 9, Name: req.Name, Year: req.Year, StartDate: req.StartDate, EndDate: req.EndDate, Weeks: req.Weeks}, nil
}

func newTestApp(client SeasonClient, identity Identity) *App {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 8, 20, 9, 0, 0, 0, time.UTC))
	return NewApp(client, identity, clock, nil)
}

func seasonForm() CreateSeasonForm {
	return CreateSeasonForm{
		Name:      " NFL 2024 ",
		StartDate: models.MustParseDate("2024-09-05"),
		EndDate:   models.MustParseDate("2025-01-08"),
		WeekCount: 18,
	}
}

func TestCreateSeasonGeneratesWeeks(t *testing.T) {
	client := &fakeSeasonClient{}
	app := newTestApp(client, asRole(models.RoleAdmin))

	season, err := app.CreateSeason(context.Background(), seasonForm())
	require.NoError(t, err)
	assert.Equal(t, int64(9), season.ID)

	req := client.created
	require.NotNil(t, req)
	assert.Equal(t, "NFL 2024", req.Name)
	assert.Equal(t, 2024, req.Year)
	assert.Len(t, req.Weeks, 18)
	assert.Equal(t, 18, req.WeekCount)
	assert.Equal(t, "2025-01-08", req.Weeks[17].EndDate.String())
	assert.Nil(t, req.Description)
}

func TestCreateSeasonValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateSeasonForm)
		wantMsg string
	}{
		{name: "blank name", mutate: func(f *CreateSeasonForm) { f.Name = " " }, wantMsg: "Season name is required."},
		{name: "too many weeks", mutate: func(f *CreateSeasonForm) { f.WeekCount = 60 }, wantMsg: "Week count must be between 1 and 52."},
		{name: "end before last week", mutate: func(f *CreateSeasonForm) { f.EndDate = models.MustParseDate("2025-01-01") }, wantMsg: "End date must be on or after the end of the last generated week."},
		{name: "end before start", mutate: func(f *CreateSeasonForm) { f.EndDate = models.MustParseDate("2024-09-01") }, wantMsg: "End date must be after the start date."},
		{name: "year out of range", mutate: func(f *CreateSeasonForm) { f.Year = 1800 }, wantMsg: "year must be at least 1920"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeSeasonClient{}
			app := newTestApp(client, asRole(models.RoleAdmin))
			form := seasonForm()
			tt.mutate(&form)

			_, err := app.CreateSeason(context.Background(), form)
			assert.ErrorIs(t, err, apierr.ErrValidation)
			assert.Equal(t, tt.wantMsg, apierr.UserMessage(err))
			assert.Nil(t, client.created)
		})
	}
}

func TestCreateSeasonRefusesSecondCurrent(t *testing.T) {
	client := &fakeSeasonClient{current: &models.Season{ID: 1, Name: "NFL 2023", IsCurrent: true}}
	app := newTestApp(client, asRole(models.RoleAdmin))

	form := seasonForm()
	form.IsCurrent = true
	_, err := app.CreateSeason(context.Background(), form)
	assert.ErrorIs(t, err, apierr.ErrValidation)
	assert.Contains(t, apierr.UserMessage(err), "NFL 2023")
	assert.Nil(t, client.created)

	client.current = nil
	_, err = app.CreateSeason(context.Background(), form)
	require.NoError(t, err)
	assert.True(t, client.created.IsCurrent)
}

func TestCreateSeasonRequiresAdmin(t *testing.T) {
	client := &fakeSeasonClient{}

	_, err := newTestApp(client, asRole(models.RoleUser)).CreateSeason(context.Background(), seasonForm())
	assert.ErrorIs(t, err, apierr.ErrForbidden)

	_, err = newTestApp(client, staticIdentity{}).CreateSeason(context.Background(), seasonForm())
	assert.ErrorIs(t, err, apierr.ErrUnauthorized)
	assert.Nil(t, client.created)
}

func TestCreateSeasonBackendErrors(t *testing.T) {
	client := &fakeSeasonClient{createErr: &clients.APIError{StatusCode: http.StatusBadRequest, Detail: "Ya existe una temporada con ese nombre"}}
	app := newTestApp(client, asRole(models.RoleAdmin))

	_, err := app.CreateSeason(context.Background(), seasonForm())
	require.Error(t, err)
	assert.Equal(t, "Ya existe una temporada con ese nombre", apierr.UserMessage(err))

	client.createErr = &clients.APIError{StatusCode: http.StatusUnprocessableEntity}
	_, err = app.CreateSeason(context.Background(), seasonForm())
	assert.Equal(t, apierr.DefaultUnprocessable, apierr.UserMessage(err))
}
