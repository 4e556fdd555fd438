package storage

import "context"

// Durable keys mirroring the session. "jwt" is a legacy alias of "token" and
// is always written and cleared together with it.
const (
	KeyToken        = "token"
	KeyLegacyToken  = "jwt"
	KeyRefreshToken = "refreshToken"
	KeyUsername     = "username"
	KeyRoles        = "roles"
)

// AllKeys lists every key a session teardown removes
var AllKeys = []string{KeyToken, KeyRefreshToken, KeyUsername, KeyRoles, KeyLegacyToken}

// Repo is a durable string key-value store. Set writes all given values
// as one unit where the backend supports it.
type Repo interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
