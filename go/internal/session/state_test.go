package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		from    State
		ev      event
		want    State
		wantErr bool
	}{
		{from: StateAnonymous, ev: eventLogin, want: StateProfilePending},
		{from: StateProfilePending, ev: eventProfileLoaded, want: StateAuthenticated},
		{from: StateProfilePending, ev: eventProfileFailed, want: StateAnonymous},
		{from: StateAuthenticated, ev: eventLogout, want: StateAnonymous},
		{from: StateProfilePending, ev: eventLogout, want: StateAnonymous},
		{from: StateAuthenticated, ev: eventLogin, want: StateProfilePending},
		{from: StateAnonymous, ev: eventProfileLoaded, want: StateAnonymous, wantErr: true},
		{from: StateAnonymous, ev: eventProfileFailed, want: StateAnonymous, wantErr: true},
		{from: StateAuthenticated, ev: eventProfileLoaded, want: StateAuthenticated, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+tt.ev.String(), func(t *testing.T) {
			got, err := next(tt.from, tt.ev)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
