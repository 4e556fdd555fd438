package auth

import "github.com/jrsteele09/go-docadmin/session"

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	// Username identifies the account.
	// Example: "alice"
	Username string `json:"username"`

	// Password is sent as is over the (TLS) transport.
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// Roles requested for the new account.
	// Example: ["ROLE_SCANNER"]
	// The backend decides whether they are granted.
	Roles []session.Role `json:"roles"`
}

// LoginResponse is the backend's reply to a successful login.
type LoginResponse struct {
	// Token is the bearer access credential.
	// Usage: Authorization: Bearer <token>
	// Lifespan: Short-lived; replaced in place by the refresh flow
	Token string `json:"token"`

	// RefreshToken exchanges for a new access token at /api/auth/refresh-token.
	// Only present: when the backend issues refresh credentials
	// Note: It is never rotated by the refresh flow
	RefreshToken string `json:"refreshToken,omitempty"`

	// Username echoes the authenticated account name.
	Username string `json:"username"`

	// Roles are ordered; the first is the primary role used for navigation.
	// Example: ["ROLE_ADMIN"]
	Roles []session.Role `json:"roles"`
}
