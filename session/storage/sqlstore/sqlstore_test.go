package sqlstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-docadmin/session/storage"
	"github.com/jrsteele09/go-docadmin/session/storage/sqlstore"
	"github.com/stretchr/testify/require"
)

func TestStore_Integration(t *testing.T) {
	dsn := os.Getenv("DB_DSN_TEST")
	if dsn == "" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST to a Postgres DSN to enable")
	}
	ctx := context.Background()

	s, err := sqlstore.Open(dsn, "test-"+uuid.NewString()[:8])
	require.NoError(t, err)
	defer s.Close()
	defer s.Delete(ctx, storage.AllKeys...)

	require.NoError(t, s.Set(ctx, map[string]string{storage.KeyUsername: "alice"}))
	require.NoError(t, s.Set(ctx, map[string]string{storage.KeyUsername: "bob"}))

	v, found, err := s.Get(ctx, storage.KeyUsername)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "bob", v)

	require.NoError(t, s.Delete(ctx, storage.KeyUsername))
	_, found, err = s.Get(ctx, storage.KeyUsername)
	require.NoError(t, err)
	require.False(t, found)
}

func TestOpen_RequiresDSN(t *testing.T) {
	_, err := sqlstore.Open("", "")
	require.Error(t, err)
}
