package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// Emitter stamps events and hands them to a publisher. Delivery failures are
// logged and never returned: activity events must not break a user flow.
type Emitter struct {
	publisher EventPublisher
	clock     clockwork.Clock
}

// NewEmitter creates an Emitter. A nil publisher discards events; a nil clock uses the real clock.
func NewEmitter(publisher EventPublisher, clock clockwork.Clock) *Emitter {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Emitter{publisher: publisher, clock: clock}
}

// Emit records an event of eventType for userID
func (e *Emitter) Emit(ctx context.Context, eventType string, userID int64, attrs map[string]string) {
	if e == nil {
		return
	}

	event := Event{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		Attributes: attrs,
		OccurredAt: e.clock.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := e.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Str("event_id", event.ID.String()).Msg("failed to publish audit event")
	}
}
