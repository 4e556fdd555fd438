package app_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-docadmin/app"
	"github.com/jrsteele09/go-docadmin/auth"
	"github.com/jrsteele09/go-docadmin/internal/config"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/internal/testbackend"
	"github.com/jrsteele09/go-docadmin/navigation"
	"github.com/jrsteele09/go-docadmin/paging"
	"github.com/jrsteele09/go-docadmin/session"
	"github.com/jrsteele09/go-docadmin/session/storage"
	"github.com/jrsteele09/go-docadmin/session/storage/filestore"
	fakestoragerepo "github.com/jrsteele09/go-docadmin/session/storage/repofake"
	fakeuserrepo "github.com/jrsteele09/go-docadmin/users/repofake"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, store string) config.Config {
	t.Helper()
	t.Setenv("SESSION_STORE", store)
	t.Setenv("DATA_FOLDER", t.TempDir())
	t.Setenv("SESSION_FILE", "")
	t.Setenv("SESSION_KEY", "")
	t.Setenv("ALL_PROXY", "")
	return config.New(filepath.Join(t.TempDir(), "none.env"))
}

func TestNew_LoginThenAdminCalls(t *testing.T) {
	backend := testbackend.Start(t)
	backend.AddAccount("admin", "secret", string(session.RoleAdmin))

	a, err := app.New(context.Background(), app.Deps{
		Config:  testConfig(t, config.StoreMemory),
		BaseURL: backend.URL(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.Equal(t, navigation.RouteHome, a.Router.Current())

	role, err := a.Auth.Login(context.Background(), auth.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, session.RoleAdmin, role)
	require.NotEmpty(t, a.Session.AccessToken())

	page, err := a.Users.List(context.Background(), paging.Params{})
	require.NoError(t, err)
	require.NotNil(t, page)

	require.NoError(t, a.Auth.Logout(context.Background()))
	require.False(t, a.Session.Snapshot().IsAuthenticated())
	require.Equal(t, navigation.RouteHome, a.Router.Current())
}

func TestNew_RestoresStoredSession(t *testing.T) {
	backend := testbackend.Start(t)
	backend.AddAccount(testbackend.AdminUsername, testbackend.AdminPassword, string(session.RoleAdmin))
	backend.AddAccessToken(testbackend.AdminAccessToken, testbackend.AdminUsername)

	repo := fakestoragerepo.NewFakeStorageRepo()
	require.NoError(t, repo.Set(context.Background(), map[string]string{
		storage.KeyLegacyToken: testbackend.AdminAccessToken,
		storage.KeyUsername:    testbackend.AdminUsername,
		storage.KeyRoles:       string(session.RoleAdmin),
	}))

	a, err := app.New(context.Background(), app.Deps{
		Config:  testConfig(t, config.StoreMemory),
		Storage: repo,
		BaseURL: backend.URL(),
	})
	require.NoError(t, err)

	require.Equal(t, testbackend.AdminAccessToken, a.Session.AccessToken())
	require.Equal(t, navigation.RouteAdmin, a.Router.Current())

	_, err = a.Groups.List(context.Background(), paging.Params{})
	require.NoError(t, err)
}

func TestNew_UserRepoOverride(t *testing.T) {
	fake := fakeuserrepo.NewFakeUserRepo()
	a, err := app.New(context.Background(), app.Deps{
		Config: testConfig(t, config.StoreMemory),
		Users:  fake,
	})
	require.NoError(t, err)
	require.Same(t, fake, a.Users)
}

func TestNew_Errors(t *testing.T) {
	t.Run("missing config", func(t *testing.T) {
		_, err := app.New(context.Background(), app.Deps{})
		require.ErrorIs(t, err, errors.ErrConfig)
	})

	t.Run("unknown store", func(t *testing.T) {
		_, err := app.New(context.Background(), app.Deps{Config: testConfig(t, "etcd")})
		require.ErrorIs(t, err, errors.ErrConfig)
	})

	t.Run("bad proxy", func(t *testing.T) {
		cfg := testConfig(t, config.StoreMemory)
		t.Setenv("ALL_PROXY", "ftp://proxy:21")
		_, err := app.New(context.Background(), app.Deps{Config: cfg})
		require.ErrorIs(t, err, errors.ErrConfig)
	})
}

func TestNewStorage(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		repo, err := app.NewStorage(context.Background(), testConfig(t, config.StoreFile))
		require.NoError(t, err)
		require.IsType(t, &filestore.Store{}, repo)
		require.NoError(t, repo.Close())
	})

	t.Run("memory", func(t *testing.T) {
		repo, err := app.NewStorage(context.Background(), testConfig(t, config.StoreMemory))
		require.NoError(t, err)
		require.IsType(t, &fakestoragerepo.FakeStorageRepo{}, repo)
	})

	t.Run("postgres without dsn", func(t *testing.T) {
		cfg := testConfig(t, config.StorePostgres)
		t.Setenv("DB_DSN", "")
		_, err := app.NewStorage(context.Background(), cfg)
		require.Error(t, err)
	})

	t.Run("malformed redis url", func(t *testing.T) {
		cfg := testConfig(t, config.StoreRedis)
		t.Setenv("REDIS_URL", "redis://host:6379/notadb")
		_, err := app.NewStorage(context.Background(), cfg)
		require.ErrorIs(t, err, errors.ErrConfig)
	})
}
