package navigation

import (
	"slices"
	"strings"
	"sync"

	"github.com/jrsteele09/go-docadmin/gateway"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/session"
	"github.com/rs/zerolog/log"
)

var _ gateway.Navigator = (*Router)(nil)

// Router tracks the current route. The gateway drives it back to RouteHome
// when a session cannot be recovered.
type Router struct {
	mu      sync.RWMutex
	current string
	history []string

	listenersMu sync.Mutex
	listeners   map[int]func(route string)
	nextID      int
}

func NewRouter(start string) *Router {
	if start == "" {
		start = RouteHome
	}
	return &Router{
		current:   start,
		history:   []string{start},
		listeners: make(map[int]func(string)),
	}
}

// Navigate replaces the current route and notifies listeners
func (r *Router) Navigate(route string) {
	r.mu.Lock()
	r.current = route
	r.history = append(r.history, route)
	r.mu.Unlock()

	log.Debug().Str("route", route).Msg("Navigated")

	r.listenersMu.Lock()
	fns := make([]func(string), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.listenersMu.Unlock()
	for _, fn := range fns {
		fn(route)
	}
}

func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// History returns every route visited, oldest first
func (r *Router) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.history)
}

// OnNavigate registers fn for every later navigation. The returned func removes it.
func (r *Router) OnNavigate(fn func(route string)) func() {
	r.listenersMu.Lock()
	defer r.listenersMu.Unlock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return func() {
		r.listenersMu.Lock()
		defer r.listenersMu.Unlock()
		delete(r.listeners, id)
	}
}

// LandingRoute maps a login's primary role to its start page. Unknown and
// empty roles land on the viewer page.
func LandingRoute(role session.Role) string {
	switch role {
	case session.RoleAdmin:
		return RouteAdmin
	case session.RoleScanner:
		return RouteScanner
	case session.RoleReviewer:
		return RouteReviewer
	default:
		return RouteViewer
	}
}

// RequireAdmin is the admin area guard. It is a navigation aid only; the
// backend makes the real authorization decision.
func RequireAdmin(s session.Session) error {
	if !s.IsAuthenticated() {
		return errors.ErrNotAuthenticated
	}
	if !s.HasRole(session.RoleAdmin) {
		return errors.Wrapf(errors.ErrForbidden, "admin role required")
	}
	return nil
}

// IsActive reports whether current is path or one of its sub-routes
func IsActive(current, path string) bool {
	return current == path || strings.HasPrefix(current, strings.TrimSuffix(path, "/")+"/")
}
