package leagues

import (
	"context"

	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/session"
)

// LeagueClient defines what the join flow needs from the backend
type LeagueClient interface {
	SearchLeagues(ctx context.Context, filters models.LeagueSearchFilters) ([]models.LeagueSearchResult, error)
	JoinLeague(ctx context.Context, leagueID int64, req models.JoinLeagueRequest) (*models.JoinLeagueResponse, error)
}

// CreateClient defines what league creation needs from the backend
type CreateClient interface {
	CreateLeague(ctx context.Context, req models.LeagueCreateRequest) (*models.LeagueCreated, error)
}

// Identity exposes the current session
type Identity interface {
	Snapshot() session.Session
}

// TeamLister resolves the teams owned by a user
type TeamLister interface {
	ListTeams(ctx context.Context, params models.TeamListParams) ([]models.Team, error)
}

// CreateLeagueForm is the league creation form as filled in by the user
type CreateLeagueForm struct {
	Name                string
	Description         string
	MaxTeams            int
	Password            string
	PlayoffFormat       int
	AllowDecimalScoring bool
	TeamName            string
	TeamCity            string
	TeamImageURL        string
}
