package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-docadmin/internal/utils"
	"golang.org/x/oauth2"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Introspection is what the client can learn from an access token without
// holding the backend's signing key. Nothing here is verified: it is display
// and expiry information only, never an authorization decision.
type Introspection struct {
	Subject   string    `json:"sub,omitempty"`
	Roles     []string  `json:"roles,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	Expired   bool      `json:"expired"`
}

// Inspect parses a bearer token's claims without verifying its signature.
// Opaque (non-JWT) tokens return an error; callers treat that as "unknown".
func Inspect(rawToken string) (*Introspection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.New("empty token")
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims")
	}

	sub, _ := claims["sub"].(string)
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	var roles []string
	switch r := claims["roles"].(type) {
	case []any:
		roles = utils.ToStringSlice(r)
	case string:
		roles = utils.SplitCSV(r)
	}

	in := &Introspection{Subject: sub, Roles: roles}
	if iat > 0 {
		in.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp > 0 {
		in.ExpiresAt = time.Unix(int64(exp), 0)
		in.Expired = NowTimeFunc().After(in.ExpiresAt)
	}
	return in, nil
}

// OAuth2 wraps a raw bearer credential as an oauth2.Token, carrying the
// expiry from its claims when the token is a JWT.
func OAuth2(rawToken string) *oauth2.Token {
	t := &oauth2.Token{AccessToken: rawToken, TokenType: "Bearer"}
	if in, err := Inspect(rawToken); err == nil {
		t.Expiry = in.ExpiresAt
	}
	return t
}
