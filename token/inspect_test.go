package token_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-docadmin/token"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	token.NowTimeFunc = func() time.Time { return now }
	defer func() { token.NowTimeFunc = time.Now }()

	creator := token.NewCreator("secret", time.Hour)
	raw, err := creator.CreateAccessToken("alice", []string{"ROLE_ADMIN", "ROLE_VIEWER"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		in, err := token.Inspect(raw)
		require.NoError(t, err)
		require.Equal(t, "alice", in.Subject)
		require.Equal(t, []string{"ROLE_ADMIN", "ROLE_VIEWER"}, in.Roles)
		require.Equal(t, now.Add(time.Hour).Unix(), in.ExpiresAt.Unix())
		require.False(t, in.Expired)
	})

	t.Run("expired token", func(t *testing.T) {
		token.NowTimeFunc = func() time.Time { return now.Add(2 * time.Hour) }
		defer func() { token.NowTimeFunc = func() time.Time { return now } }()

		in, err := token.Inspect(raw)
		require.NoError(t, err)
		require.True(t, in.Expired)
	})

	t.Run("opaque token", func(t *testing.T) {
		_, err := token.Inspect("not-a-jwt")
		require.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := token.Inspect("  ")
		require.Error(t, err)
	})
}

func TestOAuth2(t *testing.T) {
	t.Run("opaque token has no expiry", func(t *testing.T) {
		tok := token.OAuth2("T2")
		require.Equal(t, "T2", tok.AccessToken)
		require.Equal(t, "Bearer", tok.Type())
		require.True(t, tok.Expiry.IsZero())
	})

	t.Run("jwt expiry carried over", func(t *testing.T) {
		raw, err := token.NewCreator("secret", time.Hour).CreateAccessToken("bob", nil)
		require.NoError(t, err)
		tok := token.OAuth2(raw)
		require.False(t, tok.Expiry.IsZero())
	})
}

func TestCreator_Verify(t *testing.T) {
	creator := token.NewCreator("secret", time.Minute)
	raw, err := creator.CreateAccessToken("carol", nil)
	require.NoError(t, err)

	sub, err := creator.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "carol", sub)

	_, err = token.NewCreator("other", time.Minute).Verify(raw)
	require.Error(t, err)
}
