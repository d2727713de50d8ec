package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mcdev12/gridiron/go/internal/leagues"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/player"
	"github.com/mcdev12/gridiron/go/internal/seasons"
	"github.com/mcdev12/gridiron/go/internal/teams"
	"github.com/mcdev12/gridiron/go/internal/users"
)

type command struct {
	name string
	// session restores the saved login before running
	session bool
	run     func(ctx context.Context, s *Services, args []string, out io.Writer) error
}

var commands = []command{
	{name: "login", run: runLogin},
	{name: "logout", run: runLogout},
	{name: "whoami", session: true, run: runWhoami},
	{name: "register", run: runRegister},
	{name: "profile update", session: true, run: runProfileUpdate},
	{name: "leagues search", session: true, run: runLeaguesSearch},
	{name: "leagues join", session: true, run: runLeaguesJoin},
	{name: "leagues create", session: true, run: runLeaguesCreate},
	{name: "seasons weeks", run: runSeasonsWeeks},
	{name: "seasons create", session: true, run: runSeasonsCreate},
	{name: "teams list", session: true, run: runTeamsList},
	{name: "teams create", session: true, run: runTeamsCreate},
	{name: "players create", session: true, run: runPlayersCreate},
	{name: "players batch", session: true, run: runPlayersBatch},
}

// lookup matches the longest command name at the start of args
func lookup(args []string) (command, []string, bool) {
	for _, cmd := range commands {
		words := strings.Fields(cmd.name)
		if len(args) < len(words) {
			continue
		}
		if strings.Join(args[:len(words)], " ") == cmd.name {
			return cmd, args[len(words):], true
		}
	}
	return command{}, nil, false
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func runLogin(ctx context.Context, s *Services, args []string, out io.Writer) error {
	fs := newFlags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", getEnv("GRIDIRON_PASSWORD", ""), "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap, err := s.Users.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Logged in as %s (%s)\n", snap.User.Alias, snap.User.Email)
	return nil
}

func runLogout(_ context.Context, s *Services, _ []string, out io.Writer) error {
	if err := s.Users.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Logged out")
	return nil
}

func runWhoami(_ context.Context, s *Services, _ []string, out io.Writer) error {
	user, err := s.Users.Profile()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s <%s>\nalias: %s\nrole: %s\n", user.Name, user.Email, user.Alias, user.Role)
	return nil
}

func runRegister(ctx context.Context, s *Services, args []string, out io.Writer) error {
	fs := newFlags("register")
	var form users.RegisterForm
	fs.StringVar(&form.Name, "name", "", "full name")
	fs.StringVar(&form.Email, "email", "", "email")
	fs.StringVar(&form.Alias, "alias", "", "public alias")
	fs.StringVar(&form.Password, "password", "", "password")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := s.Users.Register(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Account created for %s. Log in with: gridiron login -email %s\n", user.Alias, user.Email)
	return nil
}

func runProfileUpdate(ctx context.Context, s *Services, args []string, out io.Writer) error {
	fs := newFlags("profile update")
	var form users.UpdateProfileForm
	fs.StringVar(&form.Name, "name", "", "new name")
	fs.StringVar(&form.Alias, "alias", "", "new alias")
	fs.StringVar(&form.Password, "password", "", "new password")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "new password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := s.Users.UpdateProfile(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Profile updated: %s (%s)\n", user.Name, user.Alias)
	return nil
}

func searchFlags(fs *flag.FlagSet) *models.LeagueSearchFilters {
	var filters models.LeagueSearchFilters
	fs.StringVar(&filters.Name, "name", "", "league name contains")
	fs.Func("status", "pre_draft, draft, in_season or completed", func(v string) error {
		filters.Status = models.LeagueStatus(v)
		return nil
	})
	fs.Int64Var(&filters.SeasonID, "season", 0, "season ID")
	return &filters
}

func printLeagues(out io.Writer, results []models.LeagueSearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(out, "No leagues found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSEASON\tSTATUS\tTEAMS\tSLOTS")
	for _, l := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\n", l.ID, l.Name, l.SeasonName, l.Status.Label(), l.MaxTeams, l.SlotsAvailable)
	}
	w.Flush()
}

func runLeaguesSearch(ctx context.Context, s *Services, args []string, out io.Writer) error {
	fs := newFlags("leagues search")
	filters := searchFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	results, err := s.Join.Search(ctx, *filters)
	if err != nil {
		return err
	}
	printLeagues(out, results)
	return nil
}

func runLeaguesJoin(ctx context.Context, s *Services, args []string, out io.Writer) error {
	fs := newFlags("leagues join")
	filters := searchFlags(fs)
	leagueID := fs.Int64("league", 0, "ID of the league to join")
	password := fs.String("password", "", "league password")
	alias := fs.String("alias", "", "your alias in the league")
	teamID := fs.Int64("team", 0, "join with one of your existing teams")
	teamName := fs.String("team-name", "", "name of a new fantasy team")
	teamCity := fs.String("team-city", "", "city of the new fantasy team")
	teamImage := fs.String("team-image", "", "image URL of the new fantasy team")
	if err := fs.Parse(args); err != nil {
		return err
	}

	results, err := s.Join.Search(ctx, *filters)
	if err != nil {
		return err
	}
	var target *models.LeagueSearchResult
	for i := range results {
		if results[i].ID == *leagueID {
			target = &results[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("league %d is not in the search results", *leagueID)
	}
	if err := s.Join.SelectLeague(*target); err != nil {
		return err
	}

	req := models.JoinLeagueRequest{Password: *password, UserAlias: *alias}
	if *teamID != 0 {
		req.TeamID = teamID
	}
	if *teamName != "" {
		req.FantasyTeam = &models.FantasyTeamInput{Name: *teamName, City: *teamCity}
		if *teamImage != "" {
			req.FantasyTeam.ImageURL = teamImage
		}
	}

	resp, err := s.Join.SubmitJoin(ctx, target.ID, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\nJoined %s as %s\n\n", resp.Message, target.Name, resp.UserAlias)

	refreshed, err := s.Join.Refresh(ctx)
	if err != nil {
		return err
	}
	printLeagues(out, refreshed)
	return nil
}

func runLeaguesCreate(ctx context.Context, s *Services, args []string, out io.Writer) error {
	fs := newFlags("leagues create")
	var form leagues.CreateLeagueForm
	fs.StringVar(&form.Name, "name", "", "league name")
	fs.StringVar(&form.Description, "description", "", "league description")
	fs.IntVar(&form.MaxTeams, "max-teams", 10, "number of teams: 4, 6, ... 20")
	fs.StringVar(&form.Password, "password", "", "password members need to join")
	fs.IntVar(&form.PlayoffFormat, "playoffs", 4, "playoff teams: 4 or 6")
	fs.BoolVar(&form.AllowDecimalScoring, "decimal", false, "allow decimal scoring")
	fs.StringVar(&form.TeamName, "team-name", "", "your fantasy team name")
	fs.StringVar(&form.TeamCity, "team-city", "", "your fantasy team city")
	fs.StringVar(&form.TeamImageURL, "team-image", "", "your fantasy team image URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	league, err := s.Leagues.CreateLeague(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created league %s (ID %d), %d slots remaining\n", league.Name, league.ID, league.SlotsRemaining)
	return nil
}

func parseDateFlag(fs *flag.FlagSet, name, usage string) *models.Date {
	var d models.Date
	fs.Func(name, usage+" (YYYY-MM-DD)", func(v string) error {
		parsed, err := models.ParseDate(v)
		if err != nil {
			return err
		}
		d = parsed
		return nil
	})
	return &d
}

func printWeeks(out io.Writer, weeks []models.Week) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WEEK\tSTART\tEND")
	for _, week := range weeks {
		fmt.Fprintf(w, "%d\t%s\t%s\n", week.WeekNumber, week.StartDate, week.EndDate)
	}
	w.Flush()
}

func runSeasonsWeeks(_ context.Context, _ *Services, args []string, out io.Writer) error {
	fs := newFlags("seasons weeks")
	start := parseDateFlag(fs, "start", "first day of week 1")
	count := fs.Int("count", seasons.DefaultWeeks, "number of weeks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	weeks, err := seasons.GenerateWeeks(*start, *count)
	if err != nil {
		return err
	}
	printWeeks(out, weeks)
	return nil
}

func runSeasonsCreate(ctx context.Context, s *Services, args []string, out io.Writer) error {
	fs := newFlags("seasons create")
	var form seasons.CreateSeasonForm
	fs.StringVar(&form.Name, "name", "", "season name")
	fs.IntVar(&form.Year, "year", 0, "season year (defaults to the start year)")
	start := parseDateFlag(fs, "start", "first day of the season")
	end := parseDateFlag(fs, "end", "last day of the season")
	fs.StringVar(&form.Description, "description", "", "description")
	fs.IntVar(&form.WeekCount, "weeks", seasons.DefaultWeeks, "number of weeks")
	fs.BoolVar(&form.IsCurrent, "current", false, "mark as the current season")
	if err := fs.Parse(args); err != nil {
		return err
	}
	form.StartDate, form.EndDate = *start, *end

	season, err := s.Seasons.CreateSeason(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created season %s (ID %d)\n", season.Name, season.ID)
	printWeeks(out, season.Weeks)
	return nil
}

func runTeamsList(ctx context.Context, s *Services, args []string, out io.Writer) error {
	fs := newFlags("teams list")
	var filter teams.TeamFilter
	fs.StringVar(&filter.Query, "q", "", "name contains")
	fs.BoolVar(&filter.ActiveOnly, "active", false, "only active teams")
	fs.BoolVar(&filter.Mine, "mine", false, "only teams you created")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := s.Teams.ListTeams(ctx, filter)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCITY\tACTIVE")
	for _, team := range list {
		city := ""
		if team.City != nil {
			city = *team.City
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", team.ID, team.Name, city, team.IsActive)
	}
	return w.Flush()
}

func runTeamsCreate(ctx context.Context, s *Services, args []string, out io.Writer) error {
	fs := newFlags("teams create")
	var form teams.CreateTeamForm
	fs.StringVar(&form.Name, "name", "", "team name")
	fs.StringVar(&form.City, "city", "", "team city")
	fs.StringVar(&form.ImageURL, "image-url", "", "image URL")
	fs.StringVar(&form.ImagePath, "image", "", "image file to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}

	team, err := s.Teams.CreateTeam(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created team %s (ID %d)\n", team.Name, team.ID)
	return nil
}

func runPlayersCreate(ctx context.Context, s *Services, args []string, out io.Writer) error {
	fs := newFlags("players create")
	var form player.CreatePlayerForm
	fs.StringVar(&form.Name, "name", "", "player name")
	fs.Func("position", "QB, RB, WR, TE, K, DST or FLEX", func(v string) error {
		form.Position = models.Position(v)
		return nil
	})
	fs.Int64Var(&form.TeamID, "team", 0, "team ID")
	fs.StringVar(&form.ImageURL, "image-url", "", "image URL")
	fs.StringVar(&form.ImagePath, "image", "", "image file to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := s.Players.CreatePlayer(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created player %s (%s, ID %d)\n", p.Name, p.Position, p.ID)
	return nil
}

func runPlayersBatch(ctx context.Context, s *Services, args []string, out io.Writer) error {
	fs := newFlags("players batch")
	path := fs.String("file", "", "JSON file with an array of players")
	preview := fs.Bool("preview", false, "only show what would be uploaded")
	if err := fs.Parse(args); err != nil {
		return err
	}

	players, err := s.Players.PreviewBatch(*path)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOSITION\tTEAM")
	for _, p := range players {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Position, p.Team)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if *preview {
		return nil
	}

	result, err := s.Players.BatchUpload(ctx, *path)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result.Message)
	return nil
}
