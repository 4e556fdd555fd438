package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/session"
	"github.com/jrsteele09/go-docadmin/token"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const refreshKey = "refresh"

// RefreshRequest is the body of POST /api/auth/refresh-token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse is the refresh endpoint's reply. Only Token is used; a
// rotated refresh token, if the backend sends one, is ignored.
type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// refreshTokenSource exchanges a refresh credential for a new access token
// over a client that is never intercepted.
type refreshTokenSource struct {
	ctx          context.Context
	client       *http.Client
	endpoint     string
	refreshToken string
}

var _ oauth2.TokenSource = (*refreshTokenSource)(nil)

func (s *refreshTokenSource) Token() (*oauth2.Token, error) {
	body, err := json.Marshal(RefreshRequest{RefreshToken: s.refreshToken})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh: %w", errors.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh: %w", errors.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(http.MethodPost, PathRefreshToken, &Response{StatusCode: resp.StatusCode, Body: data})
	}

	var out RefreshResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: refresh: %w", errors.ErrInvalidResponse, err)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: refresh response has no token", errors.ErrInvalidResponse)
	}
	if out.RefreshToken != "" {
		log.Debug().Msg("Refresh response carried a rotated refresh token; ignoring it")
	}
	return token.OAuth2(out.Token), nil
}

var errAlreadyExpired = fmt.Errorf("%w: session cleared while the request was in flight", errors.ErrSessionExpired)

// refreshCoordinator guarantees at most one refresh in flight. Every caller
// that arrives while it runs waits on the same outcome.
type refreshCoordinator struct {
	group     singleflight.Group
	store     session.Store
	navigator Navigator
	client    *http.Client
	endpoint  string
	timeout   time.Duration
	homeRoute string
}

// awaitFresh returns the access token to retry with after failedToken was
// rejected. When the session already holds a different credential, a refresh
// settled after the failed request was sent and no new refresh is started.
// An empty session means a failed refresh already expired it.
func (c *refreshCoordinator) awaitFresh(ctx context.Context, failedToken string) (string, error) {
	switch current := c.store.AccessToken(); {
	case current == "":
		return "", errAlreadyExpired
	case current != failedToken:
		return current, nil
	}

	ch := c.group.DoChan(refreshKey, func() (any, error) {
		return c.refresh(ctx, failedToken)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// refresh runs once per flight. It is detached from the leader's
// cancellation so a caller giving up does not fail the other waiters.
func (c *refreshCoordinator) refresh(ctx context.Context, failedToken string) (string, error) {
	switch current := c.store.AccessToken(); {
	case current == "":
		return "", errAlreadyExpired
	case current != failedToken:
		return current, nil
	}

	refreshToken := c.store.RefreshToken()
	if refreshToken == "" {
		return "", c.expire(context.WithoutCancel(ctx), errors.ErrNoRefreshToken)
	}

	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	log.Info().Msg("Access token rejected; refreshing")
	src := &refreshTokenSource{ctx: rctx, client: c.client, endpoint: c.endpoint, refreshToken: refreshToken}
	tok, err := src.Token()
	if err != nil {
		return "", c.expire(context.WithoutCancel(ctx), err)
	}

	if err := c.store.SetAccessToken(rctx, tok.AccessToken); err != nil {
		// memory already holds the new token; storage is best effort
		log.Warn().Err(err).Msg("Refreshed token not persisted")
	}
	log.Info().Msg("Access token refreshed")
	return tok.AccessToken, nil
}

// expire tears the session down after an irrecoverable refresh failure
func (c *refreshCoordinator) expire(ctx context.Context, cause error) error {
	log.Warn().Err(cause).Msg("Token refresh failed; clearing session")
	if err := c.store.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("Session storage not fully cleared")
	}
	c.navigator.Navigate(c.homeRoute)
	return fmt.Errorf("%w: %v", errors.ErrSessionExpired, cause)
}
