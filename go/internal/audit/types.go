package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the client
const (
	EventLogin             = "session.login"
	EventLogout            = "session.logout"
	EventProfileLoaded     = "session.profile_loaded"
	EventProfileFailed     = "session.profile_failed"
	EventLeagueJoined      = "league.join.succeeded"
	EventLeagueJoinFailed  = "league.join.failed"
	EventLeagueCreated     = "league.created"
	EventSeasonCreated     = "season.created"
	EventTeamCreated       = "team.created"
	EventPlayerCreated     = "player.created"
	EventPlayersBatchAdded = "player.batch_uploaded"
)

// Event is a single client activity record. Attributes never carry passwords or tokens.
type Event struct {
	ID         uuid.UUID
	Type       string
	UserID     int64
	Attributes map[string]string
	OccurredAt time.Time
}

// EventPublisher delivers events to a sink
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards every event
type NopPublisher struct{}

// Publish implements EventPublisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }
