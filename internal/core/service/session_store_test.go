package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kekeqingke/Project-Dashboard/internal/core/domain"
	"github.com/kekeqingke/Project-Dashboard/internal/infrastructure/db/memory"
)

type stubAuthAPI struct {
	loginFn       func(ctx context.Context, username, password string) (*domain.TokenGrant, error)
	currentUserFn func(ctx context.Context) (*domain.User, error)
}

func (s *stubAuthAPI) Login(ctx context.Context, username, password string) (*domain.TokenGrant, error) {
	if s.loginFn == nil {
		return nil, errors.New("login not stubbed")
	}
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthAPI) CurrentUser(ctx context.Context) (*domain.User, error) {
	if s.currentUserFn == nil {
		return nil, errors.New("current user not stubbed")
	}
	return s.currentUserFn(ctx)
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.SessionEvent
}

func (r *recordingSink) Publish(_ context.Context, event domain.SessionEvent) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	return nil
}

func (r *recordingSink) types() []domain.SessionEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SessionEventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type detailError struct{ detail string }

func (e *detailError) Error() string { return "backend error: " + e.detail }

func detailOf(err error) string {
	var de *detailError
	if errors.As(err, &de) {
		return de.detail
	}
	return ""
}

var adminUser = &domain.User{ID: 1, Username: "admin", Name: "Admin", Role: domain.RoleAdmin}

func adminLogin(_ context.Context, username, password string) (*domain.TokenGrant, error) {
	if username == "admin" && password == "secret" {
		return &domain.TokenGrant{AccessToken: "T1", TokenType: "bearer", User: adminUser}, nil
	}
	return nil, &detailError{detail: "Incorrect username or password"}
}

func newTestStore(api *stubAuthAPI, tokens *memory.TokenStore) (*SessionStore, *recordingSink) {
	sink := &recordingSink{}
	s := NewSessionStore(api, tokens, WithEventSink(sink), WithDetailFunc(detailOf))
	return s, sink
}

func persisted(t *testing.T, tokens *memory.TokenStore) string {
	t.Helper()
	token, err := tokens.Load(context.Background())
	if errors.Is(err, domain.ErrTokenNotFound) {
		return ""
	}
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return token
}

func assertEvents(t *testing.T, sink *recordingSink, want ...domain.SessionEventType) {
	t.Helper()
	got := sink.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestSessionStore_Login_Success(t *testing.T) {
	tokens := memory.NewTokenStore("")
	s, sink := newTestStore(&stubAuthAPI{loginFn: adminLogin}, tokens)

	res := s.Login(context.Background(), "admin", "secret")
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if s.State() != domain.StateAuthenticated {
		t.Fatalf("unexpected state: %s", s.State())
	}
	if !s.IsAuthenticated() || !s.IsAdmin() || s.IsEngineer() {
		t.Fatalf("unexpected predicates for %+v", s.Snapshot())
	}
	if got := persisted(t, tokens); got != "T1" {
		t.Fatalf("persisted token = %q, want T1", got)
	}
	if u := s.User(); u == nil || u.Username != "admin" {
		t.Fatalf("unexpected user: %+v", u)
	}
	assertEvents(t, sink, domain.EventLogin)
}

func TestSessionStore_Login_RejectedUsesDetail(t *testing.T) {
	tokens := memory.NewTokenStore("")
	s, sink := newTestStore(&stubAuthAPI{loginFn: adminLogin}, tokens)

	res := s.Login(context.Background(), "admin", "wrong")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Message != "Incorrect username or password" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if s.State() != domain.StateAnonymous || s.IsAuthenticated() {
		t.Fatalf("expected anonymous session, got %+v", s.Snapshot())
	}
	if got := persisted(t, tokens); got != "" {
		t.Fatalf("expected no persisted token, got %q", got)
	}
	assertEvents(t, sink, domain.EventLoginFailed)
}

func TestSessionStore_Login_FallbackMessage(t *testing.T) {
	api := &stubAuthAPI{loginFn: func(context.Context, string, string) (*domain.TokenGrant, error) {
		return nil, errors.New("connection refused")
	}}
	s, _ := newTestStore(api, memory.NewTokenStore(""))

	res := s.Login(context.Background(), "admin", "secret")
	if res.Success || res.Message != LoginFailedMessage {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSessionStore_Login_IncompleteGrant(t *testing.T) {
	api := &stubAuthAPI{loginFn: func(context.Context, string, string) (*domain.TokenGrant, error) {
		return &domain.TokenGrant{AccessToken: "T1"}, nil
	}}
	tokens := memory.NewTokenStore("")
	s, _ := newTestStore(api, tokens)

	res := s.Login(context.Background(), "admin", "secret")
	if res.Success {
		t.Fatalf("expected failure for a grant without user")
	}
	if got := persisted(t, tokens); got != "" {
		t.Fatalf("expected no persisted token, got %q", got)
	}
}

func TestSessionStore_Logout(t *testing.T) {
	tokens := memory.NewTokenStore("")
	s, sink := newTestStore(&stubAuthAPI{loginFn: adminLogin}, tokens)

	s.Login(context.Background(), "admin", "secret")
	s.Logout(context.Background())

	if s.State() != domain.StateAnonymous || s.User() != nil || s.IsAuthenticated() {
		t.Fatalf("expected cleared session, got %+v", s.Snapshot())
	}
	if got := persisted(t, tokens); got != "" {
		t.Fatalf("expected token removed, got %q", got)
	}

	// Logging out twice is harmless.
	s.Logout(context.Background())
	if s.State() != domain.StateAnonymous {
		t.Fatalf("unexpected state: %s", s.State())
	}
	assertEvents(t, sink, domain.EventLogin, domain.EventLogout, domain.EventLogout)
}

func TestSessionStore_Initialize_NoToken(t *testing.T) {
	called := false
	api := &stubAuthAPI{currentUserFn: func(context.Context) (*domain.User, error) {
		called = true
		return adminUser, nil
	}}
	s, sink := newTestStore(api, memory.NewTokenStore(""))

	if state := s.Initialize(context.Background()); state != domain.StateAnonymous {
		t.Fatalf("unexpected state: %s", state)
	}
	if called {
		t.Fatalf("expected no backend call without a token")
	}
	assertEvents(t, sink)
}

func TestSessionStore_Initialize_Rehydrates(t *testing.T) {
	api := &stubAuthAPI{currentUserFn: func(context.Context) (*domain.User, error) {
		return adminUser, nil
	}}
	s, sink := newTestStore(api, memory.NewTokenStore("T1"))

	if state := s.Initialize(context.Background()); state != domain.StateAuthenticated {
		t.Fatalf("unexpected state: %s", state)
	}
	snap := s.Snapshot()
	if snap.Token != "T1" || snap.User == nil || snap.User.Username != "admin" {
		t.Fatalf("unexpected session: %+v", snap)
	}
	assertEvents(t, sink, domain.EventRehydrated)
}

func TestSessionStore_Initialize_StaleTokenRemoved(t *testing.T) {
	tokens := memory.NewTokenStore("stale")
	var s *SessionStore
	api := &stubAuthAPI{currentUserFn: func(ctx context.Context) (*domain.User, error) {
		// The API client runs its 401 observers before returning the error.
		err := &detailError{detail: "Could not validate credentials"}
		_ = tokens.Delete(ctx)
		s.HandleUnauthorized(ctx, err)
		return nil, err
	}}
	s, sink := newTestStore(api, tokens)

	if state := s.Initialize(context.Background()); state != domain.StateAnonymous {
		t.Fatalf("unexpected state: %s", state)
	}
	if got := persisted(t, tokens); got != "" {
		t.Fatalf("expected stale token removed, got %q", got)
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected anonymous session")
	}
	assertEvents(t, sink, domain.EventUnauthorized, domain.EventRehydrateFailed)
}

func TestSessionStore_HandleUnauthorized(t *testing.T) {
	tokens := memory.NewTokenStore("")
	s, sink := newTestStore(&stubAuthAPI{loginFn: adminLogin}, tokens)
	s.Login(context.Background(), "admin", "secret")

	s.HandleUnauthorized(context.Background(), errors.New("401"))

	if s.IsAuthenticated() || s.State() != domain.StateAnonymous {
		t.Fatalf("expected anonymous session, got %+v", s.Snapshot())
	}
	if got := persisted(t, tokens); got != "" {
		t.Fatalf("expected token removed, got %q", got)
	}
	if len(sink.events) != 2 || sink.events[1].Username != "admin" {
		t.Fatalf("unexpected events: %+v", sink.events)
	}
	assertEvents(t, sink, domain.EventLogin, domain.EventUnauthorized)
}

func TestSessionStore_RefreshCurrentUser(t *testing.T) {
	renamed := &domain.User{ID: 1, Username: "admin", Name: "Renamed", Role: domain.RoleAdmin}
	fail := false
	api := &stubAuthAPI{
		loginFn: adminLogin,
		currentUserFn: func(context.Context) (*domain.User, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return renamed, nil
		},
	}
	tokens := memory.NewTokenStore("")
	s, _ := newTestStore(api, tokens)

	if err := s.RefreshCurrentUser(context.Background()); err != nil {
		t.Fatalf("refresh without token should be a no-op, got %v", err)
	}

	s.Login(context.Background(), "admin", "secret")
	if err := s.RefreshCurrentUser(context.Background()); err != nil {
		t.Fatalf("RefreshCurrentUser returned error: %v", err)
	}
	if s.User().Name != "Renamed" {
		t.Fatalf("expected refreshed user, got %+v", s.User())
	}

	fail = true
	if err := s.RefreshCurrentUser(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected logout after failed refresh")
	}
	if got := persisted(t, tokens); got != "" {
		t.Fatalf("expected token removed, got %q", got)
	}
}

func TestSessionStore_Reload(t *testing.T) {
	engineer := &domain.User{ID: 2, Username: "eng", Role: domain.RoleProjectEngineer}
	api := &stubAuthAPI{
		loginFn:       adminLogin,
		currentUserFn: func(context.Context) (*domain.User, error) { return engineer, nil },
	}
	tokens := memory.NewTokenStore("")
	s, sink := newTestStore(api, tokens)
	ctx := context.Background()

	s.Login(ctx, "admin", "secret")

	if state := s.Reload(ctx); state != domain.StateAuthenticated || !s.IsAdmin() {
		t.Fatalf("unchanged token should keep the session, got %+v", s.Snapshot())
	}

	_ = tokens.Save(ctx, "T2")
	if state := s.Reload(ctx); state != domain.StateAuthenticated || !s.IsEngineer() {
		t.Fatalf("new token should be rehydrated, got %+v", s.Snapshot())
	}

	_ = tokens.Delete(ctx)
	if state := s.Reload(ctx); state != domain.StateAnonymous {
		t.Fatalf("removed token should log out, got %s", state)
	}
	assertEvents(t, sink, domain.EventLogin, domain.EventRehydrated, domain.EventLogout)
}

func TestSessionStore_SnapshotExpiry(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": exp.Unix(),
	}).SignedString([]byte("not-known-to-the-client"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	api := &stubAuthAPI{loginFn: func(context.Context, string, string) (*domain.TokenGrant, error) {
		return &domain.TokenGrant{AccessToken: signed, User: adminUser}, nil
	}}
	s, _ := newTestStore(api, memory.NewTokenStore(""))
	s.Login(context.Background(), "admin", "secret")

	snap := s.Snapshot()
	if !snap.ExpiresAt.Equal(exp) {
		t.Fatalf("ExpiresAt = %v, want %v", snap.ExpiresAt, exp)
	}

	claims, ok := parseTokenClaims(signed)
	if !ok || claims.Subject != "admin" {
		t.Fatalf("unexpected claims: %+v ok=%v", claims, ok)
	}
	if _, ok := parseTokenClaims("opaque-token"); ok {
		t.Fatalf("expected opaque token to be rejected")
	}
}

func TestSessionStore_SnapshotIsCopy(t *testing.T) {
	s, _ := newTestStore(&stubAuthAPI{loginFn: adminLogin}, memory.NewTokenStore(""))
	s.Login(context.Background(), "admin", "secret")

	snap := s.Snapshot()
	snap.User.Role = domain.RoleMaintenanceEngineer
	if !s.IsAdmin() {
		t.Fatalf("mutating a snapshot changed the session")
	}
}
