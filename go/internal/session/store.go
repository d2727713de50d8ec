package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/gridiron/go/internal/apierr"
	"github.com/mcdev12/gridiron/go/internal/audit"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// DefaultProfileTimeout bounds a single profile fetch
const DefaultProfileTimeout = 15 * time.Second

// ErrAlreadyInitialized is returned by a second call to Init
var ErrAlreadyInitialized = errors.New("session store already initialized")

// ProfileFetcher defines what the store needs from the backend
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, token string) (*models.UserProfile, error)
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used to check token expiry
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// WithEmitter sets the audit emitter
func WithEmitter(emitter *audit.Emitter) Option {
	return func(s *Store) { s.emitter = emitter }
}

// WithProfileTimeout bounds each profile fetch
func WithProfileTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.profileTimeout = d
		}
	}
}

// Store is the single source of truth for who is logged in. Only Login,
// Logout and the profile fetch they trigger write to it; any number of
// readers may take snapshots.
type Store struct {
	tokens         TokenStore
	profiles       ProfileFetcher
	clock          clockwork.Clock
	emitter        *audit.Emitter
	profileTimeout time.Duration

	mu          sync.RWMutex
	state       State
	token       string
	user        *models.UserProfile
	loading     bool
	initialized bool
	generation  uint64
	settled     chan struct{}
	isSettled   bool

	fetches singleflight.Group
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewStore creates a store in the loading state. Call Init to restore a
// persisted token and Close to tear it down.
func NewStore(tokens TokenStore, profiles ProfileFetcher, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		tokens:         tokens,
		profiles:       profiles,
		clock:          clockwork.NewRealClock(),
		profileTimeout: DefaultProfileTimeout,
		state:          StateAnonymous,
		loading:        true,
		settled:        make(chan struct{}),
		ctx:            ctx,
		cancel:         cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init restores the persisted token, if any, and starts its profile fetch.
// A token that is already expired is discarded without a network call.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	s.initialized = true
	s.mu.Unlock()

	token, err := s.tokens.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load persisted token")
		s.resolveAnonymous()
		return fmt.Errorf("failed to restore session: %w", err)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		s.resolveAnonymous()
		return nil
	}

	if expired(token, s.clock.Now()) {
		log.Info().Msg("persisted token has expired, clearing session")
		s.mu.Lock()
		// Pass through the pending state so the failure is a valid transition
		s.applyLocked(eventLogin)
		s.token = token
		s.failLocked()
		s.mu.Unlock()
		s.emitter.Emit(ctx, audit.EventProfileFailed, 0, map[string]string{"reason": "token_expired"})
		return nil
	}

	return s.setToken(token, false)
}

// Login stores token, persists it, and starts an asynchronous profile fetch.
// The current user, if any, stays in place until the fetch resolves.
func (s *Store) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apierr.Validation("A token is required to log in.")
	}

	if err := s.setToken(token, true); err != nil {
		return err
	}
	s.emitter.Emit(ctx, audit.EventLogin, 0, nil)
	return nil
}

// Logout clears the persisted token, the token and the user synchronously.
// A fetch still in flight is discarded when it completes.
func (s *Store) Logout() error {
	s.mu.Lock()
	err := s.tokens.Clear()
	s.applyLocked(eventLogout)
	userID := s.userIDLocked()
	s.clearLocked()
	s.mu.Unlock()

	s.emitter.Emit(context.Background(), audit.EventLogout, userID, nil)
	if err != nil {
		return fmt.Errorf("failed to clear persisted token: %w", err)
	}
	return nil
}

// Refresh refetches the profile for the current token, as if it had just changed.
func (s *Store) Refresh() error {
	token := s.Token()
	if token == "" {
		return &apierr.Error{Kind: apierr.KindUnauthorized, Message: "You must be logged in."}
	}
	return s.setToken(token, false)
}

// Snapshot returns a copy of the current session
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Token returns the current bearer token, or "" when anonymous.
// It makes Store usable as a clients.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// WaitSettled blocks until no profile fetch is pending and returns the resulting session
func (s *Store) WaitSettled(ctx context.Context) (Session, error) {
	for {
		s.mu.RLock()
		ch := s.settled
		s.mu.RUnlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return s.Snapshot(), ctx.Err()
		}

		s.mu.RLock()
		snap := s.snapshotLocked()
		current := s.settled
		s.mu.RUnlock()
		// A new login may have started a fresh fetch meanwhile
		if current == ch && snap.State != StateProfilePending {
			return snap, nil
		}
	}
}

// Close cancels in-flight profile fetches and waits for them to finish
func (s *Store) Close() {
	s.cancel()
	s.wg.Wait()
}

// setToken is the "token changed" transition. Persisting happens under the
// lock so a concurrent failed fetch cannot clear the new token.
func (s *Store) setToken(token string, persist bool) error {
	s.mu.Lock()
	if persist {
		if err := s.tokens.Save(token); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to persist token: %w", err)
		}
	}
	s.initialized = true
	s.applyLocked(eventLogin)
	s.token = token
	s.generation++
	gen := s.generation
	if s.isSettled {
		s.settled = make(chan struct{})
		s.isSettled = false
	}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.fetchProfile(gen, token)
	}()
	return nil
}

func (s *Store) fetchProfile(gen uint64, token string) {
	ctx, cancel := context.WithTimeout(s.ctx, s.profileTimeout)
	defer cancel()

	v, err, shared := s.fetches.Do(token, func() (interface{}, error) {
		return s.profiles.FetchProfile(ctx, token)
	})
	if shared {
		log.Debug().Msg("profile fetch shared with a concurrent caller")
	}

	var user *models.UserProfile
	if err == nil {
		user, _ = v.(*models.UserProfile)
		if user == nil {
			err = errors.New("backend returned an empty profile")
		}
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		log.Debug().Uint64("generation", gen).Msg("discarding stale profile fetch")
		return
	}

	if err != nil && s.ctx.Err() != nil {
		// Closing the store is not a profile failure; the persisted token stays
		s.applyLocked(eventProfileFailed)
		s.clearLocked()
		s.mu.Unlock()
		log.Debug().Msg("profile fetch cancelled by shutdown")
		return
	}

	if err != nil {
		// Fail closed: a token without a profile is never kept
		s.failLocked()
		s.mu.Unlock()

		log.Warn().Err(err).Msg("failed to fetch user profile, logged out")
		s.emitter.Emit(s.ctx, audit.EventProfileFailed, 0, map[string]string{"kind": string(apierr.KindOf(err))})
		return
	}

	profile := *user
	s.applyLocked(eventProfileLoaded)
	s.user = &profile
	s.loading = false
	s.settleLocked()
	s.mu.Unlock()

	log.Info().Int64("user_id", profile.ID).Str("alias", profile.Alias).Str("role", string(profile.Role)).Msg("session authenticated")
	s.emitter.Emit(s.ctx, audit.EventProfileLoaded, profile.ID, nil)
}

func (s *Store) applyLocked(ev event) {
	nextState, err := next(s.state, ev)
	if err != nil {
		log.Error().Err(err).Msg("rejected session transition")
		return
	}
	s.state = nextState
}

// failLocked clears the session after a failed or impossible profile resolution
func (s *Store) failLocked() {
	if err := s.tokens.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear persisted token")
	}
	s.applyLocked(eventProfileFailed)
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.token = ""
	s.user = nil
	s.loading = false
	s.generation++
	s.settleLocked()
}

func (s *Store) resolveAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.loading = false
	s.settleLocked()
	s.mu.Unlock()
}

func (s *Store) settleLocked() {
	if !s.isSettled {
		close(s.settled)
		s.isSettled = true
	}
}

func (s *Store) userIDLocked() int64 {
	if s.user == nil {
		return 0
	}
	return s.user.ID
}

func (s *Store) snapshotLocked() Session {
	snap := Session{
		Token:   s.token,
		Loading: s.loading,
		State:   s.state,
	}
	if s.user != nil {
		user := *s.user
		snap.User = &user
	}
	return snap
}
