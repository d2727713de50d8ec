package player

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

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
		User:  &models.UserProfile{ID: 8, Role: role},
		State: session.StateAuthenticated,
	}}
}

type fakeClient struct {
	created  *models.PlayerCreateRequest
	uploaded string
	batch    string
	err      error
}

func (f *fakeClient) CreatePlayer(_ context.Context, req models.PlayerCreateRequest) (*models.Player, error) {
	f.created = &req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Player{ID: 1, Name: req.Name, Position: req.Position, TeamID: req.TeamID}, nil
}

func (f *fakeClient) UploadPlayer(_ context.Context, name string, position models.Position, teamID int64, imagePath string) (*models.Player, error) {
	f.uploaded = imagePath
	if f.err != nil {
		return nil, f.err
	}
	return &models.Player{ID: 2, Name: name, Position: position, TeamID: teamID}, nil
}

func (f *fakeClient) BatchUploadPlayers(_ context.Context, path string) (*models.BatchUploadResult, error) {
	f.batch = path
	if f.err != nil {
		return nil, f.err
	}
	return &models.BatchUploadResult{}, nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCreatePlayerJSON(t *testing.T) {
	client := &fakeClient{}
	app := NewApp(client, asRole(models.RoleAdmin), nil)

	player, err := app.CreatePlayer(context.Background(), CreatePlayerForm{
		Name:     " Patrick Mahomes ",
		Position: "qb",
		TeamID:   3,
		ImageURL: "https://img.example.com/mahomes.png",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PositionQB, player.Position)
	require.NotNil(t, client.created)
	assert.Equal(t, "Patrick Mahomes", client.created.Name)
	assert.Empty(t, client.uploaded)
}

func TestCreatePlayerUpload(t *testing.T) {
	client := &fakeClient{}
	app := NewApp(client, asRole(models.RoleAdmin), nil)
	image := writeFile(t, "kelce.png", "png")

	_, err := app.CreatePlayer(context.Background(), CreatePlayerForm{Name: "Travis Kelce", Position: models.PositionTE, TeamID: 3, ImagePath: image})
	require.NoError(t, err)
	assert.Equal(t, image, client.uploaded)
	assert.Nil(t, client.created)
}

func TestCreatePlayerValidation(t *testing.T) {
	image := writeFile(t, "p.png", "png")

	tests := []struct {
		name    string
		form    CreatePlayerForm
		wantMsg string
	}{
		{name: "short name", form: CreatePlayerForm{Name: "J", Position: "QB", TeamID: 1, ImageURL: "https://x.io/a.png"}, wantMsg: "Player name must be at least 2 characters."},
		{name: "bad position", form: CreatePlayerForm{Name: "Joe", Position: "LB", TeamID: 1, ImageURL: "https://x.io/a.png"}, wantMsg: "Position must be one of QB, RB, WR, TE, K, DST, FLEX."},
		{name: "no team", form: CreatePlayerForm{Name: "Joe", Position: "QB", ImageURL: "https://x.io/a.png"}, wantMsg: "Select the player's team."},
		{name: "no image", form: CreatePlayerForm{Name: "Joe", Position: "QB", TeamID: 1}, wantMsg: "An image file or image URL is required."},
		{name: "both images", form: CreatePlayerForm{Name: "Joe", Position: "QB", TeamID: 1, ImageURL: "https://x.io/a.png", ImagePath: image}, wantMsg: "not both"},
		{name: "bad url", form: CreatePlayerForm{Name: "Joe", Position: "QB", TeamID: 1, ImageURL: "a.png"}, wantMsg: "image_url must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			_, err := NewApp(client, asRole(models.RoleAdmin), nil).CreatePlayer(context.Background(), tt.form)
			assert.ErrorIs(t, err, apierr.ErrValidation)
			assert.Contains(t, apierr.UserMessage(err), tt.wantMsg)
			assert.Nil(t, client.created)
			assert.Empty(t, client.uploaded)
		})
	}
}

func TestCreatePlayerRequiresAdmin(t *testing.T) {
	client := &fakeClient{}
	_, err := NewApp(client, asRole(models.RoleUser), nil).CreatePlayer(context.Background(), CreatePlayerForm{Name: "Joe", Position: "QB", TeamID: 1, ImageURL: "https://x.io/a.png"})
	assert.ErrorIs(t, err, apierr.ErrForbidden)
	assert.Nil(t, client.created)
}

func TestCreatePlayerConflict(t *testing.T) {
	client := &fakeClient{err: &clients.APIError{StatusCode: http.StatusConflict, Detail: "Player already exists"}}
	_, err := NewApp(client, asRole(models.RoleAdmin), nil).CreatePlayer(context.Background(), CreatePlayerForm{Name: "Joe", Position: "QB", TeamID: 1, ImageURL: "https://x.io/a.png"})
	assert.ErrorIs(t, err, apierr.ErrConflict)
	assert.Equal(t, createMessages.Conflict, apierr.UserMessage(err))
}

func TestBatchUpload(t *testing.T) {
	path := writeFile(t, "players.json", `[
		{"name": "Patrick Mahomes", "position": "QB", "team": "KC", "image": "https://x.io/pm.png"},
		{"name": "Travis Kelce", "position": "TE", "team": "KC", "image": "https://x.io/tk.png"}
	]`)
	client := &fakeClient{}
	app := NewApp(client, asRole(models.RoleAdmin), nil)

	preview, err := app.PreviewBatch(path)
	require.NoError(t, err)
	require.Len(t, preview, 2)
	assert.Equal(t, "Travis Kelce", preview[1].Name)

	result, err := app.BatchUpload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, client.batch)
	assert.Equal(t, "Players uploaded successfully.", result.Message)
}

func TestBatchUploadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "object", content: `{"name": "Joe"}`, wantMsg: "The JSON must contain an array of players."},
		{name: "empty array", content: `[]`, wantMsg: "The batch file contains no players."},
		{name: "malformed", content: `[{"name": `, wantMsg: "Could not read the batch file."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			_, err := NewApp(client, asRole(models.RoleAdmin), nil).BatchUpload(context.Background(), writeFile(t, "p.json", tt.content))
			assert.ErrorIs(t, err, apierr.ErrValidation)
			assert.Equal(t, tt.wantMsg, apierr.UserMessage(err))
			assert.Empty(t, client.batch, "nothing is uploaded")
		})
	}
}
