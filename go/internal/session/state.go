package session

import (
	"fmt"

	"github.com/mcdev12/gridiron/go/internal/models"
)

// State is the authentication state of a Store
type State string

const (
	StateAnonymous      State = "ANONYMOUS"
	StateProfilePending State = "TOKEN_SET_PROFILE_PENDING"
	StateAuthenticated  State = "AUTHENTICATED"
)

// Session is a read-only snapshot of a Store.
// User is non-nil only when Token is set and the profile fetch for it succeeded.
type Session struct {
	Token   string
	User    *models.UserProfile
	Loading bool
	State   State
}

// Authenticated reports whether the snapshot may be treated as a logged in user
func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil && s.Token != ""
}

type event int

const (
	eventLogin event = iota
	eventProfileLoaded
	eventProfileFailed
	eventLogout
)

func (e event) String() string {
	switch e {
	case eventLogin:
		return "login"
	case eventProfileLoaded:
		return "profile_loaded"
	case eventProfileFailed:
		return "profile_failed"
	case eventLogout:
		return "logout"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// next is the session state machine:
//
//	ANONYMOUS -login-> TOKEN_SET_PROFILE_PENDING
//	TOKEN_SET_PROFILE_PENDING -profile_loaded-> AUTHENTICATED
//	TOKEN_SET_PROFILE_PENDING -profile_failed-> ANONYMOUS
//	AUTHENTICATED -logout-> ANONYMOUS
//
// A login while a token is already held replaces it and restarts the fetch.
// Logout is accepted from every state.
func next(current State, ev event) (State, error) {
	switch ev {
	case eventLogin:
		return StateProfilePending, nil
	case eventLogout:
		return StateAnonymous, nil
	case eventProfileLoaded:
		if current == StateProfilePending {
			return StateAuthenticated, nil
		}
	case eventProfileFailed:
		if current == StateProfilePending {
			return StateAnonymous, nil
		}
	}
	return current, fmt.Errorf("invalid session transition %s from %s", ev, current)
}
