package testbackend

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUsername stores the authenticated username
const ContextKeyUsername ContextKey = "username"

type middleware func(http.HandlerFunc) http.HandlerFunc

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...middleware) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

// RecordingMiddleware remembers the Authorization header of every request
func (b *Backend) RecordingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.authHeaders[r.URL.Path] = append(b.authHeaders[r.URL.Path], r.Header.Get("Authorization"))
		b.mu.Unlock()
		next(w, r)
	}
}

func (b *Backend) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Str("request_id", r.Header.Get("X-Request-ID")).Msg("Test backend request")
		next(w, r)
	}
}

// RecoverMiddleware turns a handler panic into a 500 so one broken test
// handler cannot take the whole server down
func (b *Backend) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("Test backend handler panicked")
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next(w, r)
	}
}

// RequireAuth validates a Bearer access token issued by this backend
func (b *Backend) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			b.unauthorized(w, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			b.unauthorized(w, "Invalid Authorization header format")
			return
		}

		b.mu.Lock()
		username, ok := b.accessTokens[parts[1]]
		forced := b.forced401[r.URL.Path]
		b.mu.Unlock()
		if !ok || forced {
			b.unauthorized(w, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUsername, username)
		next(w, r.WithContext(ctx))
	}
}

func (b *Backend) unauthorized(w http.ResponseWriter, msg string) {
	b.mu.Lock()
	b.unauthorizedCount++
	b.mu.Unlock()
	writeError(w, http.StatusUnauthorized, msg)
}
