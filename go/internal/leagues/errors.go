package leagues

import (
	"github.com/mcdev12/gridiron/go/internal/apierr"
)

const (
	msgJoinFailed   = "Could not join the league."
	msgLeagueFull   = "This league has no slots available."
	msgJoinBusy     = "A join request is already in progress."
	msgCreateFailed = "Could not create the league."
)

// capacity, alias and team name conflicts arrive as 400 or 409 depending on the backend route
var joinRules = append(
	rulesFor(apierr.KindValidation),
	rulesFor(apierr.KindConflict)...,
)

// capacityPhrases match the backend's full league messages only. Alias and
// team name details echo user input, so their rules run first.
var capacityPhrases = []string{"no tiene cupos", "league is full", "no slots available", "at capacity"}

func rulesFor(kind apierr.Kind) []apierr.DetailRule {
	return []apierr.DetailRule{
		{Kind: kind, Contains: []string{"el alias", "alias '", "alias is already"}, As: apierr.KindValidation},
		{Kind: kind, Contains: []string{"equipo con el nombre", "team name", "team with the name"}, As: apierr.KindValidation},
		{Kind: kind, Contains: capacityPhrases, Message: msgLeagueFull, As: apierr.KindLeagueFull},
	}
}

var joinMessages = apierr.Messages{
	Unauthorized:  msgJoinFailed,
	Forbidden:     msgJoinFailed,
	NotFound:      "That league no longer exists.",
	Unprocessable: apierr.DefaultUnprocessable,
	Network:       msgJoinFailed + " Try again.",
	Fallback:      msgJoinFailed,
	Rules:         joinRules,
}

var createMessages = apierr.Messages{
	NotFound:      "There is no current season to create the league in.",
	Forbidden:     "You are not permitted to create leagues.",
	Unprocessable: apierr.DefaultUnprocessable,
	Fallback:      msgCreateFailed,
	Rules: []apierr.DetailRule{
		{Kind: apierr.KindConflict, Contains: []string{"already exists"}, Message: "A league with that name already exists."},
		{Kind: apierr.KindConflict, Contains: []string{"assigned"}, Message: "That team is already assigned to a league."},
	},
}
