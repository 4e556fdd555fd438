package testbackend

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-docadmin/gateway"
	"github.com/jrsteele09/go-docadmin/session"
	fakestoragerepo "github.com/jrsteele09/go-docadmin/session/storage/repofake"
	"github.com/stretchr/testify/require"
)

const (
	AdminUsername     = "admin"
	AdminPassword     = "admin-password"
	AdminAccessToken  = "admin-access-token"
	AdminRefreshToken = "admin-refresh-token"
)

// AdminGateway returns a gateway whose session is already logged in as an admin
func (b *Backend) AdminGateway(t testing.TB) (*gateway.Gateway, *session.Holder) {
	t.Helper()
	b.AddAccount(AdminUsername, AdminPassword, string(session.RoleAdmin))
	b.AddAccessToken(AdminAccessToken, AdminUsername)
	b.AddRefreshToken(AdminRefreshToken, AdminUsername)

	holder := session.NewHolder(fakestoragerepo.NewFakeStorageRepo())
	require.NoError(t, holder.SetSession(context.Background(), session.Session{
		AccessToken:  AdminAccessToken,
		RefreshToken: AdminRefreshToken,
		Username:     AdminUsername,
		Roles:        []session.Role{session.RoleAdmin},
	}))

	gw, err := gateway.New(gateway.Options{
		BaseURL:        b.URL(),
		Store:          holder,
		RequestTimeout: 5 * time.Second,
		RefreshTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	return gw, holder
}
