package domain

// Role is the backend's role string for a user.
type Role string

const (
	RoleAdmin               Role = "admin"
	RoleCustomerAmbassador  Role = "customer_ambassador"
	RoleProjectEngineer     Role = "project_engineer"
	RoleMaintenanceEngineer Role = "maintenance_engineer"
)

// IsAdmin reports whether r is the administrator role.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// IsCustomerAmbassador reports whether r is the customer ambassador role.
func (r Role) IsCustomerAmbassador() bool { return r == RoleCustomerAmbassador }

// IsEngineer reports whether r is either engineer role.
func (r Role) IsEngineer() bool {
	return r == RoleProjectEngineer || r == RoleMaintenanceEngineer
}

// User models an authenticated actor as returned by GET /users/me.
type User struct {
	ID              int       `json:"id"`
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	Role            Role      `json:"role"`
	InitialPassword *string   `json:"initial_password,omitempty"`
	PasswordChanged bool      `json:"password_changed"`
	CreatedAt       Timestamp `json:"created_at"`
}

// TokenGrant is the body of a successful POST /token.
type TokenGrant struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}
