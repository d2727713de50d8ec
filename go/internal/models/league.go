package models

import (
	"time"
)

// LeagueStatus represents where a league is in its lifecycle
type LeagueStatus string

const (
	LeagueStatusPreDraft  LeagueStatus = "pre_draft"
	LeagueStatusDraft     LeagueStatus = "draft"
	LeagueStatusInSeason  LeagueStatus = "in_season"
	LeagueStatusCompleted LeagueStatus = "completed"
)

// Valid reports whether s is one of the known league statuses
func (s LeagueStatus) Valid() bool {
	switch s {
	case LeagueStatusPreDraft, LeagueStatusDraft, LeagueStatusInSeason, LeagueStatusCompleted:
		return true
	default:
		return false
	}
}

// Label returns the human readable status name
func (s LeagueStatus) Label() string {
	switch s {
	case LeagueStatusPreDraft:
		return "Pre-Draft"
	case LeagueStatusDraft:
		return "Draft in progress"
	case LeagueStatusInSeason:
		return "In season"
	case LeagueStatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// LeagueSearchFilters are the optional query parameters of GET /leagues/search
type LeagueSearchFilters struct {
	Name     string       `json:"name,omitempty"`
	Status   LeagueStatus `json:"status,omitempty"`
	SeasonID int64        `json:"season_id,omitempty"`
}

// IsEmpty reports whether no filter is set
func (f LeagueSearchFilters) IsEmpty() bool {
	return f.Name == "" && f.Status == "" && f.SeasonID == 0
}

// LeagueSearchResult is a league as listed by the search endpoint.
// SlotsAvailable is authoritative from the backend.
type LeagueSearchResult struct {
	ID             int64        `json:"id"`
	UUID           string       `json:"uuid,omitempty"`
	Name           string       `json:"name"`
	Description    *string      `json:"description,omitempty"`
	Status         LeagueStatus `json:"status"`
	MaxTeams       int          `json:"max_teams"`
	SeasonID       int64        `json:"season_id"`
	SeasonName     string       `json:"season_name"`
	SlotsAvailable int          `json:"slots_available"`
	CreatedAt      time.Time    `json:"created_at"`
}

// FantasyTeamInput describes a fantasy team created inline while joining or creating a league
type FantasyTeamInput struct {
	Name     string  `json:"name" validate:"required"`
	City     string  `json:"city,omitempty"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,uri"`
}

// JoinLeagueRequest is the body of POST /leagues/{id}/join.
// Exactly one of TeamID and FantasyTeam is set.
type JoinLeagueRequest struct {
	Password    string            `json:"password" validate:"fantasy_password"`
	UserAlias   string            `json:"user_alias" validate:"required,min=1,max=50"`
	TeamID      *int64            `json:"team_id,omitempty"`
	FantasyTeam *FantasyTeamInput `json:"fantasy_team,omitempty"`
}

// JoinLeagueResponse confirms a successful join
type JoinLeagueResponse struct {
	Message   string    `json:"message"`
	LeagueID  int64     `json:"league_id"`
	TeamID    int64     `json:"team_id"`
	UserAlias string    `json:"user_alias"`
	JoinedAt  time.Time `json:"joined_at"`
}

// LeagueCreateRequest is the body of POST /leagues
type LeagueCreateRequest struct {
	Name                string            `json:"name" validate:"required,min=1,max=100"`
	Description         *string           `json:"description,omitempty" validate:"omitempty,max=1000"`
	MaxTeams            int               `json:"max_teams" validate:"oneof=4 6 8 10 12 14 16 18 20"`
	Password            string            `json:"password" validate:"fantasy_password"`
	PlayoffFormat       int               `json:"playoff_format" validate:"oneof=4 6"`
	AllowDecimalScoring bool              `json:"allow_decimal_scoring"`
	FantasyTeam         *FantasyTeamInput `json:"fantasy_team" validate:"required"`
}

// LeagueCreated is returned by POST /leagues
type LeagueCreated struct {
	ID                  int64        `json:"id"`
	UUID                string       `json:"uuid,omitempty"`
	Name                string       `json:"name"`
	Status              LeagueStatus `json:"status"`
	MaxTeams            int          `json:"max_teams"`
	PlayoffFormat       int          `json:"playoff_format"`
	AllowDecimalScoring bool         `json:"allow_decimal_scoring"`
	SeasonID            int64        `json:"season_id"`
	SlotsRemaining      int          `json:"slots_remaining"`
	CommissionerTeamID  *int64       `json:"commissioner_team_id,omitempty"`
}
