package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-docadmin/internal/config"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/session"
	"github.com/jrsteele09/go-docadmin/token"
	"github.com/rs/zerolog/log"
)

// HeaderRequestID carries a per-call id, repeated on the retry of that call
const HeaderRequestID = "X-Request-ID"

// HomeRoute is where the user is sent once the session cannot be recovered
const HomeRoute = "/"

// Sender is the one capability entity clients need from the gateway
type Sender interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

var _ Sender = (*Gateway)(nil)

// Options configures a Gateway. Zero values fall back to sensible defaults.
type Options struct {
	BaseURL   string
	Store     session.Store
	Navigator Navigator

	// Transport is shared by the intercepted and the refresh client
	Transport      http.RoundTripper
	RequestTimeout time.Duration
	RefreshTimeout time.Duration
}

// Gateway sends backend requests, attaching the session's bearer token and
// recovering once from an expired access token through a shared refresh.
type Gateway struct {
	baseURL string
	store   session.Store
	client  *http.Client
	refresh *refreshCoordinator
}

// OptionsFromConfig builds gateway options from the environment configuration
func OptionsFromConfig(cfg config.Config, store session.Store, nav Navigator) (Options, error) {
	transport, err := NewTransport(cfg.GetAllProxy())
	if err != nil {
		return Options{}, err
	}
	return Options{
		BaseURL:        cfg.GetBaseURL(),
		Store:          store,
		Navigator:      nav,
		Transport:      transport,
		RequestTimeout: cfg.GetRequestTimeout(),
		RefreshTimeout: cfg.GetRefreshTimeout(),
	}, nil
}

func New(opts Options) (*Gateway, error) {
	if opts.BaseURL == "" {
		return nil, errors.Required("base URL")
	}
	if opts.Store == nil {
		return nil, errors.Required("session store")
	}
	if opts.Navigator == nil {
		opts.Navigator = noopNavigator{}
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.RefreshTimeout <= 0 {
		opts.RefreshTimeout = 15 * time.Second
	}
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")

	return &Gateway{
		baseURL: baseURL,
		store:   opts.Store,
		client:  &http.Client{Transport: opts.Transport, Timeout: opts.RequestTimeout},
		refresh: &refreshCoordinator{
			store:     opts.Store,
			navigator: opts.Navigator,
			client:    &http.Client{Transport: opts.Transport},
			endpoint:  baseURL + PathRefreshToken,
			timeout:   opts.RefreshTimeout,
			homeRoute: HomeRoute,
		},
	}, nil
}

// Send performs req. Protected requests carry the current access token; a
// 401 on the first attempt waits for the shared refresh and re-sends once
// with the fresh token. Non-2xx responses are returned as *StatusError, a
// failed refresh as ErrSessionExpired and network failures as ErrTransport.
func (g *Gateway) Send(ctx context.Context, req *Request) (*Response, error) {
	body, err := req.encodeBody()
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	exempt := IsAuthExempt(req.Path)

	credential := ""
	if !exempt {
		credential = g.store.AccessToken()
	}
	resp, err := g.do(ctx, req, body, credential, requestID)
	if err != nil {
		return nil, err
	}

	// Only a credential the backend rejected is worth refreshing. Bare
	// requests surface the backend's answer as is.
	if resp.StatusCode == http.StatusUnauthorized && !exempt && credential != "" {
		fresh, err := g.refresh.awaitFresh(ctx, credential)
		if err != nil {
			return nil, err
		}
		if resp, err = g.do(ctx, req, body, fresh, requestID); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(req.Method, req.Path, resp)
	}
	return resp, nil
}

// Refresh forces a refresh outside the 401 path, sharing any refresh already
// in flight. It is a no-op without a refresh token.
func (g *Gateway) Refresh(ctx context.Context) error {
	if g.store.RefreshToken() == "" {
		return nil
	}
	current := g.store.AccessToken()
	ch := g.refresh.group.DoChan(refreshKey, func() (any, error) {
		return g.refresh.refresh(ctx, current)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Gateway) do(ctx context.Context, req *Request, body []byte, credential, requestID string) (*Response, error) {
	u := g.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderRequestID, requestID)
	if credential != "" {
		token.OAuth2(credential).SetAuthHeader(httpReq)
	}

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		log.Debug().Err(err).Str("method", req.Method).Str("path", req.Path).Str("request_id", requestID).Msg("Request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", errors.ErrTransport, req.Method, req.Path, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", errors.ErrTransport, req.Method, req.Path, err)
	}

	log.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Str("request_id", requestID).
		Int("status", httpResp.StatusCode).
		Msg("Request completed")

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: data}, nil
}
