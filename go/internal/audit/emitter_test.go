package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, event Event) error {
	r.events = append(r.events, event)
	return r.err
}

func TestEmitterStampsEvents(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 9, 5, 12, 0, 0, 0, time.UTC))
	pub := &recordingPublisher{}
	emitter := NewEmitter(pub, clock)

	emitter.Emit(context.Background(), EventLeagueJoined, 7, map[string]string{"league_id": "3"})

	require.Len(t, pub.events, 1)
	got := pub.events[0]
	assert.Equal(t, EventLeagueJoined, got.Type)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, clock.Now().UTC(), got.OccurredAt)
	assert.NotEmpty(t, got.ID.String())
	assert.Equal(t, "3", got.Attributes["league_id"])
}

func TestEmitterSwallowsPublishErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("nats down")}
	emitter := NewEmitter(pub, nil)

	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), EventLogout, 0, nil)
	})
	assert.Len(t, pub.events, 1)
}

func TestNilEmitterIsSafe(t *testing.T) {
	var emitter *Emitter
	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), EventLogin, 1, nil)
	})
}

func TestEncodeEvent(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 9, 5, 12, 0, 0, 0, time.UTC))
	pub := &recordingPublisher{}
	NewEmitter(pub, clock).Emit(context.Background(), EventTeamCreated, 2, map[string]string{"team_id": "11"})

	data, err := EncodeEvent(pub.events[0])
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, EventTeamCreated, decoded["eventType"])
	assert.Equal(t, float64(2), decoded["userId"])
	assert.Equal(t, "2024-09-05T12:00:00Z", decoded["timestamp"])
}
