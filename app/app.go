package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-docadmin/auth"
	"github.com/jrsteele09/go-docadmin/batches"
	"github.com/jrsteele09/go-docadmin/documenttypes"
	"github.com/jrsteele09/go-docadmin/gateway"
	"github.com/jrsteele09/go-docadmin/groups"
	"github.com/jrsteele09/go-docadmin/internal/config"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/navigation"
	"github.com/jrsteele09/go-docadmin/session"
	"github.com/jrsteele09/go-docadmin/session/storage"
	"github.com/jrsteele09/go-docadmin/users"
	"github.com/rs/zerolog/log"
)

// Deps lets callers replace parts of the default wiring
type Deps struct {
	Config    config.Config
	Storage   storage.Repo      // nil opens the backend named by SESSION_STORE
	BaseURL   string            // overrides API_BASE_URL when set
	Transport http.RoundTripper // nil builds one from ALL_PROXY
	Users     users.UserRepo    // nil uses the backend client
}

// App is the composition root: one session, one gateway, and the
// services built on top of them.
type App struct {
	Config   config.Config
	Storage  storage.Repo
	Session  *session.Holder
	Router   *navigation.Router
	Gateway  *gateway.Gateway
	Auth     *auth.Service
	DocTypes documenttypes.Repo
	Batches  batches.Repo
	Groups   groups.Repo
	Users    users.UserRepo
}

func New(ctx context.Context, deps Deps) (*App, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("[app New] Config is required: %w", errors.ErrConfig)
	}

	repo := deps.Storage
	if repo == nil {
		var err error
		if repo, err = NewStorage(ctx, deps.Config); err != nil {
			return nil, fmt.Errorf("[app New] failed to open session storage: %w", err)
		}
	}

	a, err := build(ctx, deps, repo)
	if err != nil {
		if closeErr := repo.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close session storage")
		}
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, deps Deps, repo storage.Repo) (*App, error) {
	holder := session.NewHolder(repo)
	if err := holder.Load(ctx); err != nil {
		return nil, fmt.Errorf("[app New] %w", err)
	}

	router := navigation.NewRouter(navigation.RouteHome)
	if s := holder.Snapshot(); s.IsAuthenticated() {
		router = navigation.NewRouter(navigation.LandingRoute(s.PrimaryRole()))
	}

	opts, err := gateway.OptionsFromConfig(deps.Config, holder, router)
	if err != nil {
		return nil, fmt.Errorf("[app New] %w", err)
	}
	if deps.BaseURL != "" {
		opts.BaseURL = deps.BaseURL
	}
	if deps.Transport != nil {
		opts.Transport = deps.Transport
	}
	gw, err := gateway.New(opts)
	if err != nil {
		return nil, fmt.Errorf("[app New] failed to create gateway: %w", err)
	}

	authService, err := auth.NewService(auth.Deps{
		Sender:    gw,
		Refresher: gw,
		Store:     holder,
		Navigator: router,
	})
	if err != nil {
		return nil, fmt.Errorf("[app New] failed to create auth service: %w", err)
	}

	userRepo := deps.Users
	if userRepo == nil {
		userRepo = users.NewClient(gw)
	}

	return &App{
		Config:   deps.Config,
		Storage:  repo,
		Session:  holder,
		Router:   router,
		Gateway:  gw,
		Auth:     authService,
		DocTypes: documenttypes.NewClient(gw),
		Batches:  batches.NewClient(gw),
		Groups:   groups.NewClient(gw),
		Users:    userRepo,
	}, nil
}

// Close releases the session storage
func (a *App) Close() error {
	return a.Storage.Close()
}
