package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-docadmin/internal/errors"
)

// Backend authentication endpoints
const (
	PathLogin        = "/api/auth/login"
	PathRegister     = "/api/auth/register"
	PathRefreshToken = "/api/auth/refresh-token"
)

var authExemptPaths = []string{PathLogin, PathRegister, PathRefreshToken}

// IsAuthExempt reports whether a request path never carries a bearer token
// and never enters the refresh flow. Matching is by substring, so any path
// that merely contains one of the auth endpoints is exempt as well.
func IsAuthExempt(path string) bool {
	for _, p := range authExemptPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// Request describes one backend call. Body, when set, is sent as JSON.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// Response is a fully read backend response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals a JSON response body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if v == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidResponse, err)
	}
	return nil
}

func (r *Request) encodeBody() ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	if raw, ok := r.Body.([]byte); ok {
		return raw, nil
	}
	data, err := json.Marshal(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, nil
}
