package users

import (
	"context"
	"errors"
	"strings"

	"github.com/mcdev12/gridiron/go/internal/apierr"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/session"
	"github.com/mcdev12/gridiron/go/internal/validation"
	"github.com/rs/zerolog/log"
)

// UsersClient defines what the app layer needs from the backend
type UsersClient interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.UserProfile, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.UserProfile, error)
}

// SessionStore is the part of session.Store the account flows drive
type SessionStore interface {
	Login(ctx context.Context, token string) error
	Logout() error
	Refresh() error
	Snapshot() session.Session
	WaitSettled(ctx context.Context) (session.Session, error)
}

var (
	registerMessages = apierr.Messages{
		Conflict: "That email or alias is already registered.",
		Fallback: "Could not create the account.",
	}
	loginMessages = apierr.Messages{
		Unauthorized: "Incorrect email or password.",
		Fallback:     "Could not log in.",
	}
	updateMessages = apierr.Messages{
		Unauthorized: "Your session has expired. Log in again.",
		Conflict:     "That alias is already taken.",
		Fallback:     "Could not update your profile.",
	}
)

// App handles account business logic
type App struct {
	client   UsersClient
	store    SessionStore
	validate *validation.Validator
}

// NewApp creates a new users App
func NewApp(client UsersClient, store SessionStore) *App {
	return &App{
		client:   client,
		store:    store,
		validate: validation.New(),
	}
}

// Register creates a new account. It does not log the new user in.
func (a *App) Register(ctx context.Context, form RegisterForm) (*models.UserProfile, error) {
	req := models.RegisterRequest{
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.TrimSpace(form.Email),
		Alias:    strings.TrimSpace(form.Alias),
		Password: form.Password,
	}
	if err := a.validate.Struct(req); err != nil {
		return nil, apierr.Validation(err.Error())
	}
	if form.Password != form.ConfirmPassword {
		return nil, apierr.Validation("Passwords do not match.")
	}

	user, err := a.client.Register(ctx, req)
	if err != nil {
		e := apierr.Translate(err, registerMessages)
		// the backend lists every failed field on 422
		if e.Kind == apierr.KindUnprocessable && e.Detail != "" {
			e.Message = e.Detail
		}
		return nil, e
	}

	log.Info().Int64("user_id", user.ID).Str("alias", user.Alias).Msg("registered user")
	return user, nil
}

// Login exchanges credentials for a token and waits until the session has
// resolved the user's profile
func (a *App) Login(ctx context.Context, email, password string) (session.Session, error) {
	req := models.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := a.validate.Struct(req); err != nil {
		return session.Session{}, apierr.Validation(err.Error())
	}

	resp, err := a.client.Login(ctx, req)
	if err != nil {
		return session.Session{}, apierr.Translate(err, loginMessages)
	}

	if err := a.store.Login(ctx, resp.AccessToken); err != nil {
		return session.Session{}, apierr.Translate(err, loginMessages)
	}

	snap, err := a.store.WaitSettled(ctx)
	if err != nil {
		return snap, apierr.Translate(err, loginMessages)
	}
	if !snap.Authenticated() {
		return snap, &apierr.Error{Kind: apierr.KindUnauthorized, Message: "Could not load your profile. Log in again."}
	}
	return snap, nil
}

// Logout ends the session
func (a *App) Logout() error {
	if err := a.store.Logout(); err != nil {
		log.Error().Err(err).Msg("failed to logout cleanly")
		return &apierr.Error{Kind: apierr.KindUnknown, Message: "Logged out, but the saved session could not be removed.", Err: err}
	}
	return nil
}

// Profile returns the current user's profile
func (a *App) Profile() (*models.UserProfile, error) {
	snap := a.store.Snapshot()
	if err := session.RequireAuthenticated(snap); err != nil {
		return nil, err
	}
	return snap.User, nil
}

// UpdateProfile changes the current user and refetches the profile through the session
func (a *App) UpdateProfile(ctx context.Context, form UpdateProfileForm) (*models.UserProfile, error) {
	if err := session.RequireAuthenticated(a.store.Snapshot()); err != nil {
		return nil, err
	}

	req, err := a.buildUpdate(form)
	if err != nil {
		return nil, err
	}

	if _, err := a.client.UpdateProfile(ctx, req); err != nil {
		return nil, apierr.Translate(err, updateMessages)
	}

	if err := a.store.Refresh(); err != nil {
		return nil, apierr.Translate(err, updateMessages)
	}
	snap, err := a.store.WaitSettled(ctx)
	if err != nil {
		return nil, apierr.Translate(err, updateMessages)
	}
	if !snap.Authenticated() {
		return nil, &apierr.Error{Kind: apierr.KindUnauthorized, Message: updateMessages.Unauthorized}
	}

	log.Info().Int64("user_id", snap.User.ID).Msg("updated profile")
	return snap.User, nil
}

func (a *App) buildUpdate(form UpdateProfileForm) (models.UpdateProfileRequest, error) {
	var req models.UpdateProfileRequest
	if name := strings.TrimSpace(form.Name); name != "" {
		req.Name = &name
	}
	if alias := strings.TrimSpace(form.Alias); alias != "" {
		req.Alias = &alias
	}
	if form.Password != "" || form.ConfirmPassword != "" {
		if form.Password != form.ConfirmPassword {
			return req, apierr.Validation("Passwords do not match.")
		}
		if err := validation.ValidatePassword(form.Password); err != nil {
			return req, apierr.Validation(err.Error())
		}
		password := form.Password
		req.Password = &password
	}

	if req.Name == nil && req.Alias == nil && req.Password == nil {
		return req, apierr.Validation("Nothing to update.")
	}
	if err := a.validate.Struct(req); err != nil {
		return req, apierr.Validation(err.Error())
	}
	return req, nil
}

// IsInvalidCredentials reports whether err is a rejected login
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, apierr.ErrUnauthorized)
}
