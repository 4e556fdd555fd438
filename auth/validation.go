package auth

import (
	"strings"

	"github.com/jrsteele09/go-docadmin/internal/errors"
)

// Validator holds the client-side checks run before an auth request is sent.
// They only catch obvious mistakes; the backend has the final say.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateLogin requires both credentials
func (v *Validator) ValidateLogin(req LoginRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return errors.Required("username")
	}
	if req.Password == "" {
		return errors.Required("password")
	}
	return nil
}

// ValidateRegister only requires the credentials; password policy, username
// format and roles are the backend's call
func (v *Validator) ValidateRegister(req RegisterRequest) error {
	return v.ValidateLogin(LoginRequest{Username: req.Username, Password: req.Password})
}
