package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-docadmin/auth"
	"github.com/jrsteele09/go-docadmin/gateway"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/internal/testbackend"
	"github.com/jrsteele09/go-docadmin/navigation"
	"github.com/jrsteele09/go-docadmin/session"
	"github.com/jrsteele09/go-docadmin/session/storage"
	fakestoragerepo "github.com/jrsteele09/go-docadmin/session/storage/repofake"
	"github.com/jrsteele09/go-docadmin/token"
	"github.com/stretchr/testify/require"
)

const (
	testUsername = "alice"
	testPassword = "password123"
)

// testFixture holds all test dependencies
type testFixture struct {
	backend *testbackend.Backend
	repo    *fakestoragerepo.FakeStorageRepo
	holder  *session.Holder
	router  *navigation.Router
	gw      *gateway.Gateway
	service *auth.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		backend: testbackend.Start(t),
		repo:    fakestoragerepo.NewFakeStorageRepo(),
		router:  navigation.NewRouter(navigation.RouteHome),
	}
	f.holder = session.NewHolder(f.repo)

	gw, err := gateway.New(gateway.Options{
		BaseURL:        f.backend.URL(),
		Store:          f.holder,
		Navigator:      f.router,
		RequestTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	f.gw = gw

	f.service, err = auth.NewService(auth.Deps{Sender: gw, Refresher: gw, Store: f.holder, Navigator: f.router})
	require.NoError(t, err)
	return f
}

func TestNewService(t *testing.T) {
	_, err := auth.NewService(auth.Deps{})
	require.ErrorIs(t, err, errors.ErrConfig)
}

func TestLogin(t *testing.T) {
	t.Run("stores the full session and returns the primary role", func(t *testing.T) {
		f := setupTestFixture(t)
		f.backend.AddAccount(testUsername, testPassword, string(session.RoleAdmin), string(session.RoleViewer))

		role, err := f.service.Login(context.Background(), auth.LoginRequest{Username: testUsername, Password: testPassword})
		require.NoError(t, err)
		require.Equal(t, session.RoleAdmin, role)
		require.Equal(t, navigation.RouteAdmin, f.service.LandingRoute(role))

		s := f.service.Current()
		require.True(t, s.IsAuthenticated())
		require.Equal(t, testUsername, s.Username)
		require.NotEmpty(t, s.RefreshToken)
		require.True(t, f.service.HasRole(session.RoleViewer))
		require.False(t, f.service.HasRole(session.RoleScanner))

		values := f.repo.Values()
		require.Equal(t, s.AccessToken, values[storage.KeyToken])
		require.Equal(t, s.AccessToken, values[storage.KeyLegacyToken])
		require.Equal(t, s.RefreshToken, values[storage.KeyRefreshToken])
		require.Equal(t, testUsername, values[storage.KeyUsername])
		require.Equal(t, "ROLE_ADMIN,ROLE_VIEWER", values[storage.KeyRoles])

		in, err := token.Inspect(s.AccessToken)
		require.NoError(t, err)
		require.Equal(t, testUsername, in.Subject)
	})

	t.Run("no roles", func(t *testing.T) {
		f := setupTestFixture(t)
		f.backend.AddAccount(testUsername, testPassword)

		role, err := f.service.Login(context.Background(), auth.LoginRequest{Username: testUsername, Password: testPassword})
		require.NoError(t, err)
		require.Empty(t, role)
		require.Equal(t, navigation.RouteViewer, f.service.LandingRoute(role))
	})

	t.Run("wrong password", func(t *testing.T) {
		f := setupTestFixture(t)
		f.backend.AddAccount(testUsername, testPassword)

		_, err := f.service.Login(context.Background(), auth.LoginRequest{Username: testUsername, Password: "nope"})
		require.ErrorIs(t, err, errors.ErrUnauthorized)
		require.Equal(t, "Invalid username or password", gateway.UserMessage(err))
		require.False(t, f.service.IsAuthenticated())
		require.Zero(t, f.backend.RefreshCalls())
		require.Empty(t, f.repo.Values())
	})

	t.Run("missing fields never reach the backend", func(t *testing.T) {
		f := setupTestFixture(t)

		_, err := f.service.Login(context.Background(), auth.LoginRequest{Password: testPassword})
		require.ErrorIs(t, err, errors.ErrValidation)
		_, err = f.service.Login(context.Background(), auth.LoginRequest{Username: testUsername})
		require.ErrorIs(t, err, errors.ErrValidation)
		require.Empty(t, f.backend.AuthHeaders(gateway.PathLogin))
	})
}

func TestRegister(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	req := auth.RegisterRequest{Username: "bob", Password: "secret-pw", Roles: []session.Role{session.RoleScanner}}
	require.NoError(t, f.service.Register(ctx, req))
	require.False(t, f.service.IsAuthenticated())

	err := f.service.Register(ctx, req)
	require.ErrorIs(t, err, errors.ErrConflict)
	require.Equal(t, "Username already exists", gateway.UserMessage(err))

	role, err := f.service.Login(ctx, auth.LoginRequest{Username: "bob", Password: "secret-pw"})
	require.NoError(t, err)
	require.Equal(t, session.RoleScanner, role)
}

func TestRegister_LeavesPolicyToBackend(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	for _, req := range []auth.RegisterRequest{
		{Username: "carol", Password: "abc12"},
		{Username: "carol smith", Password: "secret-pw"},
		{Username: "dave", Password: "secret-pw", Roles: []session.Role{"ROLE_AUDITOR"}},
	} {
		require.NoError(t, f.service.Register(ctx, req), req.Username)
	}
	require.Len(t, f.backend.AuthHeaders(gateway.PathRegister), 3)

	err := f.service.Register(ctx, auth.RegisterRequest{Username: "erin"})
	require.ErrorIs(t, err, errors.ErrValidation)
	require.Len(t, f.backend.AuthHeaders(gateway.PathRegister), 3)
}

func TestRefresh(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.backend.AddAccount(testUsername, testPassword, string(session.RoleAdmin))

	_, err := f.service.Login(ctx, auth.LoginRequest{Username: testUsername, Password: testPassword})
	require.NoError(t, err)
	before := f.service.Current().AccessToken

	f.backend.QueueAccessTokens("T-refreshed")
	require.NoError(t, f.service.Refresh(ctx))
	require.Equal(t, 1, f.backend.RefreshCalls())
	require.NotEqual(t, before, f.service.Current().AccessToken)
	require.Equal(t, "T-refreshed", f.repo.Values()[storage.KeyToken])

	t.Run("rejected refresh token ends the session", func(t *testing.T) {
		f.backend.RevokeRefreshTokens()
		err := f.service.Refresh(ctx)
		require.ErrorIs(t, err, errors.ErrSessionExpired)
		require.False(t, f.service.IsAuthenticated())
		require.Equal(t, navigation.RouteHome, f.router.Current())
	})
}

func TestLogout(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.backend.AddAccount(testUsername, testPassword, string(session.RoleAdmin))

	role, err := f.service.Login(ctx, auth.LoginRequest{Username: testUsername, Password: testPassword})
	require.NoError(t, err)
	f.router.Navigate(f.service.LandingRoute(role))
	require.Equal(t, navigation.RouteAdmin, f.router.Current())

	require.NoError(t, f.service.Logout(ctx))
	require.False(t, f.service.IsAuthenticated())
	require.Empty(t, f.service.Current().Roles)
	require.Empty(t, f.repo.Values())
	require.Equal(t, navigation.RouteHome, f.router.Current())
}
