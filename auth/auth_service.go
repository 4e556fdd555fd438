package auth

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-docadmin/gateway"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/navigation"
	"github.com/jrsteele09/go-docadmin/session"
	"github.com/rs/zerolog/log"
)

// Refresher forces an access token refresh outside the 401 path
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Deps holds all dependencies for the Service
type Deps struct {
	Sender    gateway.Sender    // Sends auth requests (auth endpoints bypass bearer attachment)
	Refresher Refresher         // Shares the gateway's single-flight refresh
	Store     session.Store     // Process-wide session
	Navigator gateway.Navigator // Receives the post-logout redirect
}

// Service provides login, logout and session queries for the current user.
type Service struct {
	deps      Deps
	validator *Validator
}

// NewService initializes a new Service with required dependencies.
func NewService(deps Deps) (*Service, error) {
	if deps.Sender == nil {
		return nil, fmt.Errorf("[NewService] Sender is required: %w", errors.ErrConfig)
	}
	if deps.Refresher == nil {
		return nil, fmt.Errorf("[NewService] Refresher is required: %w", errors.ErrConfig)
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("[NewService] Store is required: %w", errors.ErrConfig)
	}
	if deps.Navigator == nil {
		return nil, fmt.Errorf("[NewService] Navigator is required: %w", errors.ErrConfig)
	}
	return &Service{deps: deps, validator: NewValidator()}, nil
}

// Login authenticates, stores the full session and returns the primary role
// ("" when the backend listed none).
func (s *Service) Login(ctx context.Context, req LoginRequest) (session.Role, error) {
	if err := s.validator.ValidateLogin(req); err != nil {
		return "", err
	}

	var resp LoginResponse
	if err := gateway.PostJSON(ctx, s.deps.Sender, gateway.PathLogin, req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: %w", MissingTokenErr, errors.ErrInvalidResponse)
	}

	sess := session.Session{
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
		Username:     resp.Username,
		Roles:        resp.Roles,
	}
	if err := s.deps.Store.SetSession(ctx, sess); err != nil {
		// the in-memory session is live; only persistence failed
		log.Warn().Err(err).Str("username", resp.Username).Msg("Logged in but session not persisted")
	}

	log.Info().Str("username", resp.Username).Int("roles", len(resp.Roles)).Msg("Logged in")
	return sess.PrimaryRole(), nil
}

// Register creates an account. It does not log the new user in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	if err := s.validator.ValidateRegister(req); err != nil {
		return err
	}
	if req.Roles == nil {
		req.Roles = []session.Role{}
	}
	return gateway.PostJSON(ctx, s.deps.Sender, gateway.PathRegister, req, nil)
}

// Refresh rotates the access token now. It is a no-op without a refresh token;
// a rejected refresh token ends the session as it does on the 401 path.
func (s *Service) Refresh(ctx context.Context) error {
	return s.deps.Refresher.Refresh(ctx)
}

// Logout clears every session field from memory and storage and returns to
// the login route.
func (s *Service) Logout(ctx context.Context) error {
	username := s.deps.Store.Snapshot().Username
	err := s.deps.Store.Clear(ctx)
	s.deps.Navigator.Navigate(navigation.RouteHome)
	log.Info().Str("username", username).Msg("Logged out")
	return err
}

func (s *Service) Current() session.Session {
	return s.deps.Store.Snapshot()
}

func (s *Service) IsAuthenticated() bool {
	return s.deps.Store.Snapshot().IsAuthenticated()
}

func (s *Service) HasRole(role session.Role) bool {
	return s.deps.Store.Snapshot().HasRole(role)
}

// LandingRoute is where a user with the given primary role starts
func (s *Service) LandingRoute(role session.Role) string {
	return navigation.LandingRoute(role)
}
