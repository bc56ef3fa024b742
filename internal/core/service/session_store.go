package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
	"github.com/kekeqingke/Project-Dashboard/internal/core/ports"
	"github.com/kekeqingke/Project-Dashboard/internal/metrics"
)

// LoginFailedMessage is returned when the backend gives no usable detail.
const LoginFailedMessage = "login failed"

// DetailFunc extracts the backend's human-readable message from an error.
type DetailFunc func(err error) string

// SessionStore owns the token and user of one client session.
//
// The mutex only protects the fields; it is never held across a backend
// call, because the API client's 401 observer calls back into the store.
// Overlapping Login calls are not serialized: whichever response is applied
// last decides the final state.
type SessionStore struct {
	api    ports.AuthAPI
	tokens ports.TokenStore
	events ports.SessionEventSink
	detail DetailFunc
	log    zerolog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	state domain.SessionState
	token string
	user  *domain.User
}

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithEventSink sets where session transitions are published.
func WithEventSink(sink ports.SessionEventSink) SessionOption {
	return func(s *SessionStore) { s.events = sink }
}

// WithDetailFunc sets how a login failure message is read from an error.
func WithDetailFunc(fn DetailFunc) SessionOption {
	return func(s *SessionStore) { s.detail = fn }
}

// WithSessionLogger sets the logger.
func WithSessionLogger(log zerolog.Logger) SessionOption {
	return func(s *SessionStore) { s.log = log }
}

// NewSessionStore returns an anonymous session. Call Initialize to pick up a
// previously persisted token.
func NewSessionStore(api ports.AuthAPI, tokens ports.TokenStore, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		api:    api,
		tokens: tokens,
		detail: func(error) string { return "" },
		log:    zerolog.Nop(),
		now:    time.Now,
		state:  domain.StateAnonymous,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login exchanges credentials for a token. On success the token is persisted
// and the session becomes authenticated; on failure the session is anonymous
// and the result carries the backend's detail or LoginFailedMessage.
func (s *SessionStore) Login(ctx context.Context, username, password string) domain.LoginResult {
	s.setState(domain.StateAuthenticating)

	grant, err := s.api.Login(ctx, username, password)
	if err == nil && (grant == nil || grant.AccessToken == "" || grant.User == nil) {
		err = errors.New("token response missing access_token or user")
	}
	if err != nil {
		s.clear(ctx)

		msg := s.detail(err)
		if msg == "" {
			msg = LoginFailedMessage
		}
		s.log.Info().Err(err).Str("username", username).Msg("login rejected")
		s.emit(ctx, domain.EventLoginFailed, &domain.User{Username: username})
		return domain.LoginResult{Success: false, Message: msg}
	}

	if err := s.tokens.Save(ctx, grant.AccessToken); err != nil {
		s.log.Error().Err(err).Msg("persist token")
	}

	s.mu.Lock()
	s.state, s.token, s.user = domain.StateAuthenticated, grant.AccessToken, grant.User
	s.mu.Unlock()

	s.log.Info().
		Str("username", grant.User.Username).
		Str("role", string(grant.User.Role)).
		Msg("logged in")
	s.emit(ctx, domain.EventLogin, grant.User)
	return domain.LoginResult{Success: true}
}

// Logout clears the session and removes the persisted token. It is valid in
// any state.
func (s *SessionStore) Logout(ctx context.Context) {
	user := s.clear(ctx)
	s.log.Info().Msg("logged out")
	s.emit(ctx, domain.EventLogout, user)
}

// RefreshCurrentUser re-fetches the current user. Without a token it does
// nothing. Any failure is treated as an invalid token and logs out.
func (s *SessionStore) RefreshCurrentUser(ctx context.Context) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return nil
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.log.Info().Err(err).Msg("current user refresh failed, logging out")
		s.Logout(ctx)
		return err
	}

	s.mu.Lock()
	if s.token == token {
		s.user = user
		s.state = domain.StateAuthenticated
	}
	s.mu.Unlock()
	return nil
}

// Initialize rehydrates the session from the persisted token. Without one the
// session stays anonymous. A failing current-user fetch removes the stale
// token and leaves the session anonymous. The resulting state is returned.
func (s *SessionStore) Initialize(ctx context.Context) domain.SessionState {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenNotFound) {
			s.log.Warn().Err(err).Msg("load persisted token")
		}
		s.reset()
		return domain.StateAnonymous
	}

	s.mu.Lock()
	s.state, s.token, s.user = domain.StateAuthenticating, token, nil
	s.mu.Unlock()

	if claims, ok := parseTokenClaims(token); ok && !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(s.now()) {
		s.log.Debug().Time("expires_at", claims.ExpiresAt).Msg("persisted token looks expired, asking backend anyway")
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.clear(ctx)
		s.log.Info().Err(err).Msg("rehydration failed, stale token removed")
		s.emit(ctx, domain.EventRehydrateFailed, nil)
		return domain.StateAnonymous
	}

	s.mu.Lock()
	if s.token != token {
		// A login or logout finished while the fetch was in flight.
		state := s.state
		s.mu.Unlock()
		return state
	}
	s.state, s.user = domain.StateAuthenticated, user
	s.mu.Unlock()

	s.log.Info().Str("username", user.Username).Msg("session rehydrated")
	s.emit(ctx, domain.EventRehydrated, user)
	return domain.StateAuthenticated
}

// Reload brings the in-memory session in line with the persisted token after
// another process changed it: a removed token logs this session out locally,
// a different token is rehydrated, an unchanged token is left alone.
func (s *SessionStore) Reload(ctx context.Context) domain.SessionState {
	token, err := s.tokens.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrTokenNotFound) {
		s.log.Warn().Err(err).Msg("load persisted token")
		return s.State()
	}

	s.mu.RLock()
	current, state := s.token, s.state
	s.mu.RUnlock()

	switch {
	case token == current:
		return state
	case token == "":
		user := s.reset()
		s.emit(ctx, domain.EventLogout, user)
		return domain.StateAnonymous
	default:
		return s.Initialize(ctx)
	}
}

// HandleUnauthorized resets the session after the backend rejected the token.
// It has the signature of an API client 401 observer.
func (s *SessionStore) HandleUnauthorized(ctx context.Context, _ error) {
	user := s.clear(ctx)
	s.log.Info().Msg("backend rejected the session token")
	s.emit(ctx, domain.EventUnauthorized, user)
}

// Snapshot returns a copy of the session.
func (s *SessionStore) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.Session{State: s.state, Token: s.token}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	if claims, ok := parseTokenClaims(s.token); ok {
		snap.ExpiresAt = claims.ExpiresAt
	}
	return snap
}

func (s *SessionStore) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the authenticated user, or nil.
func (s *SessionStore) User() *domain.User {
	return s.Snapshot().User
}

func (s *SessionStore) IsAuthenticated() bool      { return s.Snapshot().IsAuthenticated() }
func (s *SessionStore) IsAdmin() bool              { return s.Snapshot().IsAdmin() }
func (s *SessionStore) IsCustomerAmbassador() bool { return s.Snapshot().IsCustomerAmbassador() }
func (s *SessionStore) IsEngineer() bool           { return s.Snapshot().IsEngineer() }

func (s *SessionStore) setState(state domain.SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// clear resets the session and removes the persisted token, the side effect
// of every transition into the anonymous state.
func (s *SessionStore) clear(ctx context.Context) *domain.User {
	user := s.reset()
	if err := s.tokens.Delete(ctx); err != nil {
		s.log.Error().Err(err).Msg("remove persisted token")
	}
	return user
}

// reset clears the in-memory session and returns the user it held.
func (s *SessionStore) reset() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := s.user
	s.state, s.token, s.user = domain.StateAnonymous, "", nil
	return user
}

func (s *SessionStore) emit(ctx context.Context, typ domain.SessionEventType, user *domain.User) {
	metrics.SessionEventsTotal.WithLabelValues(string(typ)).Inc()
	if s.events == nil {
		return
	}
	event := domain.SessionEvent{Type: typ, At: s.now().UTC()}
	if user != nil {
		event.Username = user.Username
		event.Role = user.Role
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event", string(typ)).Msg("publish session event")
	}
}
