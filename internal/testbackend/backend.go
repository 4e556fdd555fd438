// Package testbackend is an in-memory stand-in for the document-management
// REST backend, used by package tests.
package testbackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/jrsteele09/go-docadmin/token"
)

type account struct {
	Password string
	Roles    []string
}

// Backend serves the auth and admin endpoints over httptest
type Backend struct {
	server  *httptest.Server
	router  *mux.Router
	creator *token.Creator

	mu                sync.Mutex
	accounts          map[string]account
	accessTokens      map[string]string
	refreshTokens     map[string]string
	nextAccessTokens  []string
	authHeaders       map[string][]string
	forced401         map[string]bool
	refreshCalls      int
	unauthorizedCount int
	refreshGate       chan struct{}
	rotateRefresh     bool

	docTypes *collection
	batches  *collection
	groups   *collection
	users    *collection
}

// Start runs a backend for the lifetime of t
func Start(t testing.TB) *Backend {
	t.Helper()
	b := New()
	b.server = httptest.NewServer(b.router)
	t.Cleanup(b.server.Close)
	return b
}

func New() *Backend {
	b := &Backend{
		router:        mux.NewRouter(),
		creator:       token.NewCreator("test-backend-secret", time.Hour),
		accounts:      make(map[string]account),
		accessTokens:  make(map[string]string),
		refreshTokens: make(map[string]string),
		authHeaders:   make(map[string][]string),
		forced401:     make(map[string]bool),
		docTypes:      newCollection(),
		batches:       newCollection(),
		groups:        newCollection(),
		users:         newCollection(),
	}
	b.initRoutes()
	return b
}

func (b *Backend) URL() string {
	return b.server.URL
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

// AddAccount registers credentials accepted by the login endpoint
func (b *Backend) AddAccount(username, password string, roles ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[username] = account{Password: password, Roles: roles}
}

// AddAccessToken makes tok a valid bearer credential for username
func (b *Backend) AddAccessToken(tok, username string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accessTokens[tok] = username
}

// AddRefreshToken makes tok a refresh credential accepted for username
func (b *Backend) AddRefreshToken(tok, username string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshTokens[tok] = username
}

// RevokeAccessTokens invalidates every access token issued so far
func (b *Backend) RevokeAccessTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accessTokens = make(map[string]string)
}

// RevokeRefreshTokens makes every further refresh fail
func (b *Backend) RevokeRefreshTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshTokens = make(map[string]string)
}

// QueueAccessTokens fixes the values of the next issued access tokens
func (b *Backend) QueueAccessTokens(toks ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextAccessTokens = append(b.nextAccessTokens, toks...)
}

// RotateRefreshTokens makes the refresh endpoint also return a new refresh token
func (b *Backend) RotateRefreshTokens(rotate bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rotateRefresh = rotate
}

// ForceUnauthorized makes every protected request to path fail with 401
func (b *Backend) ForceUnauthorized(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forced401[path] = true
}

// BlockRefresh holds refresh calls until the returned func is called
func (b *Backend) BlockRefresh() (release func()) {
	gate := make(chan struct{})
	b.mu.Lock()
	b.refreshGate = gate
	b.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func (b *Backend) RefreshCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshCalls
}

// UnauthorizedResponses counts 401s sent by the bearer check
func (b *Backend) UnauthorizedResponses() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unauthorizedCount
}

// AuthHeaders returns the Authorization headers received for path, in order
func (b *Backend) AuthHeaders(path string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.authHeaders[path]...)
}

// issueAccessToken must be called with mu held
func (b *Backend) issueAccessToken(username string, roles []string) (string, error) {
	var tok string
	if len(b.nextAccessTokens) > 0 {
		tok = b.nextAccessTokens[0]
		b.nextAccessTokens = b.nextAccessTokens[1:]
	} else {
		var err error
		if tok, err = b.creator.CreateAccessToken(username, roles); err != nil {
			return "", err
		}
	}
	b.accessTokens[tok] = username
	return tok, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
