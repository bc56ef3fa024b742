package domain

import "time"

// SessionState is the lifecycle state of a client session.
type SessionState string

const (
	StateAnonymous      SessionState = "anonymous"
	StateAuthenticating SessionState = "authenticating"
	StateAuthenticated  SessionState = "authenticated"
)

// Session is a point-in-time copy of the session store.
type Session struct {
	State     SessionState `json:"state"`
	Token     string       `json:"-"`
	User      *User        `json:"user,omitempty"`
	ExpiresAt time.Time    `json:"expires_at,omitzero"`
}

// IsAuthenticated holds iff both a token and a user are present.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

func (s Session) role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

func (s Session) IsAdmin() bool              { return s.role().IsAdmin() }
func (s Session) IsCustomerAmbassador() bool { return s.role().IsCustomerAmbassador() }
func (s Session) IsEngineer() bool           { return s.role().IsEngineer() }

// LoginResult is the normalized outcome of a login attempt.
type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SessionEventType names a session transition.
type SessionEventType string

const (
	EventLogin           SessionEventType = "login"
	EventLoginFailed     SessionEventType = "login_failed"
	EventLogout          SessionEventType = "logout"
	EventUnauthorized    SessionEventType = "unauthorized"
	EventRehydrated      SessionEventType = "rehydrated"
	EventRehydrateFailed SessionEventType = "rehydrate_failed"
)

// SessionEvent records a session transition for observers.
type SessionEvent struct {
	Type     SessionEventType `json:"type"`
	Username string           `json:"username,omitempty"`
	Role     Role             `json:"role,omitempty"`
	At       time.Time        `json:"at"`
}
