package leagues

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/mcdev12/gridiron/go/clients"
	"github.com/mcdev12/gridiron/go/internal/apierr"
	"github.com/mcdev12/gridiron/go/internal/audit"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreateClient struct {
	got *models.LeagueCreateRequest
	err error
}

func (f *fakeCreateClient) CreateLeague(_ context.Context, req models.LeagueCreateRequest) (*models.LeagueCreated, error) {
	f.got = &req
	if f.err != nil {
		return nil, f.err
	}
	return &models.LeagueCreated{ID: 10, Name: req.Name, MaxTeams: req.MaxTeams, SlotsRemaining: req.MaxTeams - 1}, nil
}

type recordingPublisher struct {
	events []audit.Event
}

func (r *recordingPublisher) Publish(_ context.Context, event audit.Event) error {
	r.events = append(r.events, event)
	return nil
}

func validCreateForm() CreateLeagueForm {
	return CreateLeagueForm{
		Name:          "  Sunday Legends ",
		MaxTeams:      10,
		Password:      validPassword,
		PlayoffFormat: 4,
		TeamName:      " Gang ",
		TeamCity:      "Austin",
	}
}

func TestCreateLeague(t *testing.T) {
	client := &fakeCreateClient{}
	pub := &recordingPublisher{}
	app := NewCreateApp(client, authenticated(3), audit.NewEmitter(pub, nil))

	league, err := app.CreateLeague(context.Background(), validCreateForm())
	require.NoError(t, err)
	assert.Equal(t, int64(10), league.ID)

	require.NotNil(t, client.got)
	assert.Equal(t, "Sunday Legends", client.got.Name)
	assert.Nil(t, client.got.Description)
	assert.Equal(t, "Gang", client.got.FantasyTeam.Name)
	assert.Nil(t, client.got.FantasyTeam.ImageURL)

	require.Len(t, pub.events, 1)
	assert.Equal(t, audit.EventLeagueCreated, pub.events[0].Type)
	assert.Equal(t, int64(3), pub.events[0].UserID)
	assert.NotContains(t, pub.events[0].Attributes, "password")
}

func TestCreateLeagueValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateLeagueForm)
		wantMsg string
	}{
		{name: "blank name", mutate: func(f *CreateLeagueForm) { f.Name = "  " }, wantMsg: "League name is required."},
		{name: "long name", mutate: func(f *CreateLeagueForm) { f.Name = strings.Repeat("n", 101) }, wantMsg: "at most 100"},
		{name: "long description", mutate: func(f *CreateLeagueForm) { f.Description = strings.Repeat("d", 1001) }, wantMsg: "at most 1000"},
		{name: "odd team count", mutate: func(f *CreateLeagueForm) { f.MaxTeams = 7 }, wantMsg: "max_teams must be one of"},
		{name: "too many teams", mutate: func(f *CreateLeagueForm) { f.MaxTeams = 22 }, wantMsg: "max_teams must be one of"},
		{name: "playoff format", mutate: func(f *CreateLeagueForm) { f.PlayoffFormat = 8 }, wantMsg: "playoff_format must be one of: 4, 6"},
		{name: "password", mutate: func(f *CreateLeagueForm) { f.Password = "Abc!def12" }, wantMsg: "only letters and digits"},
		{name: "team name", mutate: func(f *CreateLeagueForm) { f.TeamName = " X " }, wantMsg: "Team name must be at least 2"},
		{name: "team city", mutate: func(f *CreateLeagueForm) { f.TeamCity = "" }, wantMsg: "Team city must be at least 2"},
		{name: "team image", mutate: func(f *CreateLeagueForm) { f.TeamImageURL = "not a url" }, wantMsg: "image_url must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeCreateClient{}
			app := NewCreateApp(client, authenticated(3), nil)
			form := validCreateForm()
			tt.mutate(&form)

			_, err := app.CreateLeague(context.Background(), form)
			require.Error(t, err)
			assert.ErrorIs(t, err, apierr.ErrValidation)
			assert.Contains(t, apierr.UserMessage(err), tt.wantMsg)
			assert.Nil(t, client.got)
		})
	}
}

func TestCreateLeagueErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "no current season", err: &clients.APIError{StatusCode: http.StatusNotFound, Detail: "No current season"}, wantMsg: createMessages.NotFound},
		{name: "duplicate name", err: &clients.APIError{StatusCode: http.StatusConflict, Detail: "League name already exists"}, wantMsg: "A league with that name already exists."},
		{name: "team assigned", err: &clients.APIError{StatusCode: http.StatusConflict, Detail: "Team already assigned"}, wantMsg: "That team is already assigned to a league."},
		{name: "unprocessable", err: &clients.APIError{StatusCode: http.StatusUnprocessableEntity}, wantMsg: apierr.DefaultUnprocessable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewCreateApp(&fakeCreateClient{err: tt.err}, authenticated(3), nil)
			_, err := app.CreateLeague(context.Background(), validCreateForm())
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, apierr.UserMessage(err))
		})
	}
}

func TestCreateLeagueRequiresLogin(t *testing.T) {
	client := &fakeCreateClient{}
	app := NewCreateApp(client, staticIdentity{s: session.Session{}}, nil)

	_, err := app.CreateLeague(context.Background(), validCreateForm())
	assert.ErrorIs(t, err, apierr.ErrUnauthorized)
	assert.Nil(t, client.got)
}
