package session

import (
	"context"
	"slices"
)

// Role is an informational role label returned by the backend at login.
// Roles drive navigation only; the backend enforces authorization.
type Role string

const (
	RoleAdmin    Role = "ROLE_ADMIN"
	RoleScanner  Role = "ROLE_SCANNER"
	RoleReviewer Role = "ROLE_REVIEWER"
	RoleViewer   Role = "ROLE_VIEWER"
)

// Session is the process-wide record of the current identity and credentials.
type Session struct {
	AccessToken  string `json:"token,omitempty" yaml:"token,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty" yaml:"refreshToken,omitempty"`
	Username     string `json:"username,omitempty" yaml:"username,omitempty"`
	Roles        []Role `json:"roles" yaml:"roles"`
}

// IsAuthenticated holds exactly when an access token is present
func (s Session) IsAuthenticated() bool {
	return s.AccessToken != ""
}

func (s Session) HasRole(role Role) bool {
	return slices.Contains(s.Roles, role)
}

// PrimaryRole is the first role the backend listed, or "" when there are none
func (s Session) PrimaryRole() Role {
	if len(s.Roles) == 0 {
		return ""
	}
	return s.Roles[0]
}

func (s Session) clone() Session {
	s.Roles = slices.Clone(s.Roles)
	if s.Roles == nil {
		s.Roles = []Role{}
	}
	return s
}

// Store is the session holder injected into the gateway and auth service.
type Store interface {
	Snapshot() Session
	AccessToken() string
	RefreshToken() string
	SetSession(ctx context.Context, s Session) error
	SetAccessToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	Subscribe(fn func(Session)) (unsubscribe func())
}
