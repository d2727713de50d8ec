package session

import (
	"github.com/mcdev12/gridiron/go/internal/apierr"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// RequireAuthenticated rejects every snapshot that is not AUTHENTICATED,
// including one whose profile is still loading.
func RequireAuthenticated(s Session) error {
	if s.Authenticated() {
		return nil
	}
	if s.Loading || s.State == StateProfilePending {
		return &apierr.Error{Kind: apierr.KindUnauthorized, Message: "Your session is still being verified. Try again in a moment."}
	}
	return &apierr.Error{Kind: apierr.KindUnauthorized, Message: "You must be logged in."}
}

// RequireRole rejects snapshots that are not AUTHENTICATED with role
func RequireRole(s Session, role models.Role) error {
	if err := RequireAuthenticated(s); err != nil {
		return err
	}
	if s.User.Role != role {
		return &apierr.Error{Kind: apierr.KindForbidden, Message: apierr.DefaultForbidden}
	}
	return nil
}
