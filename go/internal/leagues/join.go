package leagues

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/gridiron/go/internal/apierr"
	"github.com/mcdev12/gridiron/go/internal/audit"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/session"
	"github.com/mcdev12/gridiron/go/internal/validation"
	"github.com/rs/zerolog/log"
)

// MinFantasyTeamName is the minimum length, in characters, of an inline fantasy team name
const MinFantasyTeamName = 2

// JoinOption configures a JoinFlow
type JoinOption func(*JoinFlow)

// WithRequireSearchFilter rejects searches without any filter
func WithRequireSearchFilter(required bool) JoinOption {
	return func(f *JoinFlow) { f.requireFilter = required }
}

// WithJoinEmitter sets the audit emitter
func WithJoinEmitter(emitter *audit.Emitter) JoinOption {
	return func(f *JoinFlow) { f.emitter = emitter }
}

// WithJoinClock sets the clock used to stamp confirmations the backend left undated
func WithJoinClock(clock clockwork.Clock) JoinOption {
	return func(f *JoinFlow) { f.clock = clock }
}

// JoinFlow lets an authenticated user find a league and join it.
// Slot counts always come from the backend; the flow never adjusts them.
type JoinFlow struct {
	client        LeagueClient
	identity      Identity
	teams         TeamLister
	validate      *validation.Validator
	emitter       *audit.Emitter
	clock         clockwork.Clock
	requireFilter bool

	submitting atomic.Bool

	mu       sync.Mutex
	results  []models.LeagueSearchResult
	filters  models.LeagueSearchFilters
	searched bool
	stale    bool
	selected *models.LeagueSearchResult
}

// NewJoinFlow creates a join flow. teams may be nil when joining with an
// existing team is not offered.
func NewJoinFlow(client LeagueClient, identity Identity, teams TeamLister, opts ...JoinOption) *JoinFlow {
	f := &JoinFlow{
		client:   client,
		identity: identity,
		teams:    teams,
		validate: validation.New(),
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Search lists leagues matching filters and remembers them for Refresh
func (f *JoinFlow) Search(ctx context.Context, filters models.LeagueSearchFilters) ([]models.LeagueSearchResult, error) {
	filters.Name = strings.TrimSpace(filters.Name)
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, apierr.Validationf("Unknown league status %q.", filters.Status)
	}
	if f.requireFilter && filters.IsEmpty() {
		return nil, apierr.Validation("Enter at least one search filter.")
	}

	results, err := f.client.SearchLeagues(ctx, filters)
	if err != nil {
		return nil, apierr.Translate(err, apierr.Messages{Fallback: "Could not load leagues."})
	}

	f.mu.Lock()
	f.results = results
	f.filters = filters
	f.searched = true
	f.stale = false
	f.mu.Unlock()

	log.Debug().Int("count", len(results)).Str("name", filters.Name).Str("status", string(filters.Status)).Msg("league search completed")
	return copyResults(results), nil
}

// Refresh re-runs the last search. It is the only way slot counts change.
func (f *JoinFlow) Refresh(ctx context.Context) ([]models.LeagueSearchResult, error) {
	f.mu.Lock()
	filters, searched := f.filters, f.searched
	f.mu.Unlock()

	if !searched {
		return nil, apierr.Validation("Search for leagues first.")
	}
	return f.Search(ctx, filters)
}

// Results returns the last search results and whether they are known to be out of date
func (f *JoinFlow) Results() ([]models.LeagueSearchResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyResults(f.results), f.stale
}

// SelectLeague opens the join dialog for league. A league without slots is
// rejected locally.
func (f *JoinFlow) SelectLeague(league models.LeagueSearchResult) error {
	if league.SlotsAvailable <= 0 {
		return &apierr.Error{Kind: apierr.KindLeagueFull, Message: msgLeagueFull}
	}

	f.mu.Lock()
	f.selected = &league
	f.mu.Unlock()
	return nil
}

// Selected returns the league whose join dialog is open, if any
func (f *JoinFlow) Selected() (models.LeagueSearchResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return models.LeagueSearchResult{}, false
	}
	return *f.selected, true
}

// CloseDialog drops the selected league
func (f *JoinFlow) CloseDialog() {
	f.mu.Lock()
	f.selected = nil
	f.mu.Unlock()
}

// SubmitJoin validates req and asks the backend to join leagueID. Only one
// submission may be in flight at a time.
func (f *JoinFlow) SubmitJoin(ctx context.Context, leagueID int64, req models.JoinLeagueRequest) (*models.JoinLeagueResponse, error) {
	if !f.submitting.CompareAndSwap(false, true) {
		return nil, &apierr.Error{Kind: apierr.KindBusy, Message: msgJoinBusy}
	}
	defer f.submitting.Store(false)

	snap := f.identity.Snapshot()
	if err := session.RequireAuthenticated(snap); err != nil {
		return nil, err
	}

	req, err := f.prepare(ctx, snap.User.ID, leagueID, req)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.JoinLeague(ctx, leagueID, req)
	if err != nil {
		e := apierr.Translate(err, joinMessages)
		if e.Kind == apierr.KindLeagueFull {
			f.mu.Lock()
			f.stale = true
			f.selected = nil
			f.mu.Unlock()
		}
		log.Warn().Err(err).Int64("league_id", leagueID).Str("kind", string(e.Kind)).Msg("failed to join league")
		f.emitter.Emit(ctx, audit.EventLeagueJoinFailed, snap.User.ID, map[string]string{
			"league_id": formatID(leagueID),
			"kind":      string(e.Kind),
		})
		return nil, e
	}

	if resp.JoinedAt.IsZero() {
		resp.JoinedAt = f.clock.Now().UTC()
	}
	if resp.LeagueID == 0 {
		resp.LeagueID = leagueID
	}

	f.mu.Lock()
	f.selected = nil
	f.stale = true
	f.mu.Unlock()

	log.Info().Int64("league_id", leagueID).Int64("team_id", resp.TeamID).Str("alias", resp.UserAlias).Msg("joined league")
	f.emitter.Emit(ctx, audit.EventLeagueJoined, snap.User.ID, map[string]string{
		"league_id": formatID(leagueID),
		"team_id":   formatID(resp.TeamID),
	})
	return resp, nil
}

// prepare normalizes req and runs every local check
func (f *JoinFlow) prepare(ctx context.Context, userID, leagueID int64, req models.JoinLeagueRequest) (models.JoinLeagueRequest, error) {
	if leagueID <= 0 {
		return req, apierr.Validation("Select a league to join.")
	}

	f.mu.Lock()
	for _, league := range f.results {
		if league.ID == leagueID && league.SlotsAvailable <= 0 {
			f.mu.Unlock()
			return req, &apierr.Error{Kind: apierr.KindLeagueFull, Message: msgLeagueFull}
		}
	}
	f.mu.Unlock()

	req.UserAlias = strings.TrimSpace(req.UserAlias)
	if req.FantasyTeam != nil {
		team := *req.FantasyTeam
		team.Name = strings.TrimSpace(team.Name)
		team.City = strings.TrimSpace(team.City)
		if team.ImageURL != nil && strings.TrimSpace(*team.ImageURL) == "" {
			team.ImageURL = nil
		}
		req.FantasyTeam = &team
	}

	switch {
	case req.TeamID == nil && req.FantasyTeam == nil:
		return req, apierr.Validation("Choose a team or name a new fantasy team.")
	case req.TeamID != nil && req.FantasyTeam != nil:
		return req, apierr.Validation("Choose either an existing team or a new fantasy team, not both.")
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		return req, apierr.Validation(err.Error())
	}
	if err := f.validate.Struct(req); err != nil {
		return req, apierr.Validation(err.Error())
	}

	if req.FantasyTeam != nil && utf8.RuneCountInString(req.FantasyTeam.Name) < MinFantasyTeamName {
		return req, apierr.Validationf("Fantasy team name must be at least %d characters.", MinFantasyTeamName)
	}

	if req.TeamID != nil {
		if err := f.checkOwnership(ctx, userID, *req.TeamID); err != nil {
			return req, err
		}
	}
	return req, nil
}

// checkOwnership makes sure teamID is one of the user's own teams
func (f *JoinFlow) checkOwnership(ctx context.Context, userID, teamID int64) error {
	if f.teams == nil {
		return apierr.Validation("Joining with an existing team is not available.")
	}

	owned, err := f.teams.ListTeams(ctx, models.TeamListParams{UserID: userID})
	if err != nil {
		return apierr.Translate(err, apierr.Messages{Fallback: "Could not load your teams."})
	}
	for _, team := range owned {
		if team.ID == teamID && (team.CreatedBy == 0 || team.CreatedBy == userID) {
			return nil
		}
	}
	return apierr.Validation("The selected team does not belong to you.")
}

func copyResults(results []models.LeagueSearchResult) []models.LeagueSearchResult {
	if results == nil {
		return nil
	}
	out := make([]models.LeagueSearchResult, len(results))
	copy(out, results)
	return out
}
