package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/internal/utils"
	"github.com/jrsteele09/go-docadmin/session/storage"
	"github.com/rs/zerolog/log"
)

var _ Store = (*Holder)(nil)

// Holder keeps the in-memory session, the source of truth for the process
// lifetime, and mirrors every change into durable storage.
type Holder struct {
	mu      sync.RWMutex
	current Session
	repo    storage.Repo

	subsMu sync.Mutex
	subs   map[int]func(Session)
	nextID int
}

func NewHolder(repo storage.Repo) *Holder {
	return &Holder{
		current: Session{Roles: []Role{}},
		repo:    repo,
		subs:    make(map[int]func(Session)),
	}
}

// Load reconstructs the session from durable storage. The legacy "jwt" key
// is read when "token" is absent.
func (h *Holder) Load(ctx context.Context) error {
	get := func(key string) (string, error) {
		v, _, err := h.repo.Get(ctx, key)
		return v, err
	}

	var s Session
	var err error
	if s.AccessToken, err = get(storage.KeyToken); err != nil {
		return errors.Wrapf(err, "failed to load session")
	}
	if s.AccessToken == "" {
		if s.AccessToken, err = get(storage.KeyLegacyToken); err != nil {
			return errors.Wrapf(err, "failed to load session")
		}
	}
	if s.RefreshToken, err = get(storage.KeyRefreshToken); err != nil {
		return errors.Wrapf(err, "failed to load session")
	}
	if s.Username, err = get(storage.KeyUsername); err != nil {
		return errors.Wrapf(err, "failed to load session")
	}
	roles, err := get(storage.KeyRoles)
	if err != nil {
		return errors.Wrapf(err, "failed to load session")
	}
	for _, r := range utils.SplitCSV(roles) {
		s.Roles = append(s.Roles, Role(r))
	}

	h.mu.Lock()
	h.current = s.clone()
	h.mu.Unlock()
	h.notify(s)
	return nil
}

func (h *Holder) Snapshot() Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.clone()
}

func (h *Holder) AccessToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.AccessToken
}

func (h *Holder) RefreshToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.RefreshToken
}

// SetSession replaces the whole session, as after a login. An absent refresh
// token keeps the previous one only while the same user signs in again.
func (h *Holder) SetSession(ctx context.Context, s Session) error {
	s = s.clone()

	h.mu.Lock()
	dropRefresh := false
	if s.RefreshToken == "" {
		if h.current.Username == s.Username {
			s.RefreshToken = h.current.RefreshToken
		} else {
			dropRefresh = h.current.RefreshToken != ""
		}
	}
	h.current = s
	values := map[string]string{
		storage.KeyToken:       s.AccessToken,
		storage.KeyLegacyToken: s.AccessToken,
		storage.KeyUsername:    s.Username,
		storage.KeyRoles:       utils.JoinCSV(s.Roles),
	}
	if s.RefreshToken != "" {
		values[storage.KeyRefreshToken] = s.RefreshToken
	}
	err := h.repo.Set(ctx, values)
	if err == nil && dropRefresh {
		err = h.repo.Delete(ctx, storage.KeyRefreshToken)
	}
	h.mu.Unlock()

	h.notify(s)
	return h.storageErr(err, "set session")
}

// SetAccessToken rotates only the access credential. Both the current and
// the legacy key are written together.
func (h *Holder) SetAccessToken(ctx context.Context, token string) error {
	h.mu.Lock()
	h.current.AccessToken = token
	s := h.current.clone()
	err := h.repo.Set(ctx, map[string]string{
		storage.KeyToken:       token,
		storage.KeyLegacyToken: token,
	})
	h.mu.Unlock()

	h.notify(s)
	return h.storageErr(err, "set access token")
}

// Clear removes every identity and credential field from memory and storage
func (h *Holder) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.current = Session{Roles: []Role{}}
	err := h.repo.Delete(ctx, storage.AllKeys...)
	h.mu.Unlock()

	h.notify(Session{Roles: []Role{}})
	return h.storageErr(err, "clear session")
}

// Subscribe registers fn to be called with a copy of the session after
// every change. The returned func removes the subscription.
func (h *Holder) Subscribe(fn func(Session)) func() {
	h.subsMu.Lock()
	defer h.subsMu.Unlock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() {
		h.subsMu.Lock()
		defer h.subsMu.Unlock()
		delete(h.subs, id)
	}
}

func (h *Holder) notify(s Session) {
	h.subsMu.Lock()
	fns := make([]func(Session), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.subsMu.Unlock()

	for _, fn := range fns {
		fn(s.clone())
	}
}

func (h *Holder) storageErr(err error, op string) error {
	if err == nil {
		return nil
	}
	log.Err(err).Str("op", op).Msg("Session storage write failed; in-memory session kept")
	return fmt.Errorf("%w: %s: %w", errors.ErrStorage, op, err)
}
