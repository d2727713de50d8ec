package session

import (
	"testing"

	"github.com/mcdev12/gridiron/go/internal/apierr"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRequireAuthenticated(t *testing.T) {
	user := &models.UserProfile{ID: 1, Role: models.RoleUser}

	tests := []struct {
		name string
		s    Session
		ok   bool
	}{
		{name: "anonymous", s: Session{State: StateAnonymous}},
		{name: "loading", s: Session{State: StateAnonymous, Loading: true}},
		{name: "pending with previous user", s: Session{State: StateProfilePending, Token: "t", User: user}},
		{name: "authenticated", s: Session{State: StateAuthenticated, Token: "t", User: user}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireAuthenticated(tt.s)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apierr.ErrUnauthorized)
		})
	}
}

func TestRequireRole(t *testing.T) {
	admin := Session{State: StateAuthenticated, Token: "t", User: &models.UserProfile{Role: models.RoleAdmin}}
	user := Session{State: StateAuthenticated, Token: "t", User: &models.UserProfile{Role: models.RoleUser}}

	assert.NoError(t, RequireRole(admin, models.RoleAdmin))
	assert.ErrorIs(t, RequireRole(user, models.RoleAdmin), apierr.ErrForbidden)
	assert.ErrorIs(t, RequireRole(Session{}, models.RoleAdmin), apierr.ErrUnauthorized)
}
