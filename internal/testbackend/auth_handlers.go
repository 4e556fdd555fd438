package testbackend

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

type credentials struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
}

func (b *Backend) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		acct, ok := b.accounts[req.Username]
		if !ok || acct.Password != req.Password {
			b.unauthorizedCount++
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}

		access, err := b.issueAccessToken(req.Username, acct.Roles)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		refresh := uuid.NewString()
		b.refreshTokens[refresh] = req.Username

		roles := acct.Roles
		if roles == nil {
			roles = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"token":        access,
			"refreshToken": refresh,
			"username":     req.Username,
			"roles":        roles,
		})
	}
}

func (b *Backend) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Username and password are required")
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		if _, exists := b.accounts[req.Username]; exists {
			writeError(w, http.StatusConflict, "Username already exists")
			return
		}
		b.accounts[req.Username] = account{Password: req.Password, Roles: req.Roles}
		writeJSON(w, http.StatusCreated, nil)
	}
}

func (b *Backend) refreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.refreshCalls++
		gate := b.refreshGate
		b.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		username, ok := b.refreshTokens[req.RefreshToken]
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}

		access, err := b.issueAccessToken(username, b.accounts[username].Roles)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp := map[string]string{"token": access}
		if b.rotateRefresh {
			rotated := uuid.NewString()
			delete(b.refreshTokens, req.RefreshToken)
			b.refreshTokens[rotated] = username
			resp["refreshToken"] = rotated
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (b *Backend) probeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, _ := r.Context().Value(ContextKeyUsername).(string)
		writeJSON(w, http.StatusOK, map[string]string{
			"username":      username,
			"authorization": r.Header.Get("Authorization"),
		})
	}
}
