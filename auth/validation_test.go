package auth_test

import (
	"testing"

	"github.com/jrsteele09/go-docadmin/auth"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/session"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateLogin(t *testing.T) {
	v := auth.NewValidator()

	tests := []struct {
		name    string
		req     auth.LoginRequest
		wantErr bool
	}{
		{"valid", auth.LoginRequest{Username: "alice", Password: "pw"}, false},
		{"blank username", auth.LoginRequest{Username: "  ", Password: "pw"}, true},
		{"empty password", auth.LoginRequest{Username: "alice"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateLogin(tt.req)
			if tt.wantErr {
				require.ErrorIs(t, err, errors.ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidator_ValidateRegister(t *testing.T) {
	v := auth.NewValidator()

	tests := []struct {
		name    string
		req     auth.RegisterRequest
		wantErr bool
	}{
		{"valid", auth.RegisterRequest{Username: "bob", Password: "secret-pw", Roles: []session.Role{session.RoleViewer}}, false},
		{"short password", auth.RegisterRequest{Username: "bob", Password: "abc"}, false},
		{"spaces in username", auth.RegisterRequest{Username: "bob smith", Password: "secret-pw"}, false},
		{"role the client does not know", auth.RegisterRequest{Username: "bob", Password: "secret-pw", Roles: []session.Role{"ROLE_AUDITOR"}}, false},
		{"blank username", auth.RegisterRequest{Username: " ", Password: "secret-pw"}, true},
		{"empty password", auth.RegisterRequest{Username: "bob"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRegister(tt.req)
			if tt.wantErr {
				require.ErrorIs(t, err, errors.ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}
