package redisstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-docadmin/session/storage"
	"github.com/jrsteele09/go-docadmin/session/storage/redisstore"
	"github.com/stretchr/testify/require"
)

func TestStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_URL")
	if addr == "" {
		t.Skip("integration tests are disabled; set REDIS_TEST_URL to enable")
	}
	ctx := context.Background()

	s, err := redisstore.New(ctx, redisstore.Options{Addr: addr, Namespace: "docadmin-test-" + uuid.NewString()})
	require.NoError(t, err)
	defer s.Close()
	defer s.Delete(ctx, storage.AllKeys...)

	require.NoError(t, s.Set(ctx, map[string]string{storage.KeyToken: "T1", storage.KeyLegacyToken: "T1"}))

	v, found, err := s.Get(ctx, storage.KeyLegacyToken)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "T1", v)

	require.NoError(t, s.Delete(ctx, storage.AllKeys...))
	_, found, err = s.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	require.False(t, found)
}

func TestNew_RequiresAddr(t *testing.T) {
	_, err := redisstore.New(context.Background(), redisstore.Options{})
	require.Error(t, err)
}

func TestOptionsFromURL(t *testing.T) {
	t.Run("bare address", func(t *testing.T) {
		opts, err := redisstore.OptionsFromURL("cache:6379", "pw", 2, "ns")
		require.NoError(t, err)
		require.Equal(t, redisstore.Options{Addr: "cache:6379", Password: "pw", DB: 2, Namespace: "ns"}, opts)
	})

	t.Run("url wins over separate settings", func(t *testing.T) {
		opts, err := redisstore.OptionsFromURL("redis://:urlpw@cache:6380/4", "pw", 2, "ns")
		require.NoError(t, err)
		require.Equal(t, "cache:6380", opts.Addr)
		require.Equal(t, "urlpw", opts.Password)
		require.Equal(t, 4, opts.DB)
	})

	t.Run("url without db keeps configured db", func(t *testing.T) {
		opts, err := redisstore.OptionsFromURL("redis://cache:6379", "", 3, "ns")
		require.NoError(t, err)
		require.Equal(t, 3, opts.DB)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := redisstore.OptionsFromURL("redis://cache:6379/x", "", 0, "ns")
		require.Error(t, err)
	})
}
