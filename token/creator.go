package token

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Creator signs HS256 access tokens. The client never issues credentials to
// a real backend; this exists for the in-memory test backend and local demos.
type Creator struct {
	secret []byte
	expiry time.Duration
}

func NewCreator(secret string, expiry time.Duration) *Creator {
	return &Creator{secret: []byte(secret), expiry: expiry}
}

// CreateAccessToken creates a signed access token for the given user and roles
func (c *Creator) CreateAccessToken(username string, roles []string) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"sub":   username,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(c.expiry).Unix(),
		"jti":   uuid.New().String(),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token minted by this creator
func (c *Creator) Verify(rawToken string) (string, error) {
	parsed, err := jwtlib.Parse(rawToken, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwtlib.WithTimeFunc(NowTimeFunc))
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	return parsed.Claims.GetSubject()
}
