package auth

import "errors"

var MissingTokenErr = errors.New("login response has no token")
