package navigation_test

import (
	"testing"

	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/navigation"
	"github.com/jrsteele09/go-docadmin/session"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := navigation.NewRouter("")
	require.Equal(t, navigation.RouteHome, r.Current())

	var seen []string
	unsubscribe := r.OnNavigate(func(route string) { seen = append(seen, route) })

	r.Navigate(navigation.RouteAdmin)
	r.Navigate(navigation.RouteAdminBatches)
	unsubscribe()
	r.Navigate(navigation.RouteHome)

	require.Equal(t, navigation.RouteHome, r.Current())
	require.Equal(t, []string{navigation.RouteAdmin, navigation.RouteAdminBatches}, seen)
	require.Equal(t, []string{"/", "/admin", "/admin/batches", "/"}, r.History())
}

func TestLandingRoute(t *testing.T) {
	tests := []struct {
		role session.Role
		want string
	}{
		{session.RoleAdmin, navigation.RouteAdmin},
		{session.RoleScanner, navigation.RouteScanner},
		{session.RoleReviewer, navigation.RouteReviewer},
		{session.RoleViewer, navigation.RouteViewer},
		{"ROLE_AUDITOR", navigation.RouteViewer},
		{"", navigation.RouteViewer},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			require.Equal(t, tt.want, navigation.LandingRoute(tt.role))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Run("not authenticated", func(t *testing.T) {
		err := navigation.RequireAdmin(session.Session{Roles: []session.Role{session.RoleAdmin}})
		require.ErrorIs(t, err, errors.ErrNotAuthenticated)
	})

	t.Run("missing admin role", func(t *testing.T) {
		err := navigation.RequireAdmin(session.Session{AccessToken: "T1", Roles: []session.Role{session.RoleViewer}})
		require.ErrorIs(t, err, errors.ErrForbidden)
	})

	t.Run("admin", func(t *testing.T) {
		err := navigation.RequireAdmin(session.Session{AccessToken: "T1", Roles: []session.Role{session.RoleViewer, session.RoleAdmin}})
		require.NoError(t, err)
	})
}

func TestIsActive(t *testing.T) {
	require.True(t, navigation.IsActive("/admin/document-types", navigation.RouteAdminDocTypes))
	require.True(t, navigation.IsActive("/admin/document-types/restore", navigation.RouteAdminDocTypes))
	require.False(t, navigation.IsActive("/admin/document-types-old", navigation.RouteAdminDocTypes))
	require.False(t, navigation.IsActive("/admin", navigation.RouteAdminBatches))
}
