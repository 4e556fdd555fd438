// Package cli is the docadmin command line. Every invocation builds one App,
// runs a single command against it and closes it again.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync/atomic"
	"text/tabwriter"

	"github.com/jrsteele09/go-docadmin/app"
	"github.com/jrsteele09/go-docadmin/gateway"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/navigation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cli.Version=..."
var Version = "dev"

const reloginHint = "Run 'docadmin login' to sign in again."

type Deps struct {
	App    app.Deps
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type runner struct {
	deps       Deps
	apiURL     string
	jsonOutput bool

	// set when a command's session was torn down and the router sent us home
	sessionEnded atomic.Bool
}

// Execute runs the command line in args and returns the process exit code
func Execute(ctx context.Context, deps Deps, args []string) int {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	r := &runner{deps: deps}
	root := r.rootCommand()
	root.SetArgs(args)
	root.SetIn(deps.Stdin)
	root.SetOut(deps.Stdout)
	root.SetErr(deps.Stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %s\n", gateway.UserMessage(err))
		if r.sessionEnded.Load() {
			fmt.Fprintln(deps.Stderr, reloginHint)
		}
		return 1
	}
	return 0
}

func (r *runner) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "docadmin",
		Short: "Administration client for the document management backend",
		Long: `docadmin manages document types, batches, access groups and users on the
document management backend.

Sign in once with 'docadmin login'; the session is kept in the configured
session store and access tokens are refreshed automatically.

Environment Variables:
  API_BASE_URL   Backend API URL (default: http://localhost:8080)
  SESSION_STORE  file, redis, postgres or memory (default: file)
  ALL_PROXY      Optional proxy, e.g. ssh+socks5://user@jump:22?private-key=/path`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&r.apiURL, "api-url", "", "Backend API URL (overrides API_BASE_URL)")
	root.PersistentFlags().BoolVar(&r.jsonOutput, "json", false, "Output JSON instead of human-readable text")

	root.AddCommand(
		r.loginCommand(),
		r.logoutCommand(),
		r.whoamiCommand(),
		r.refreshCommand(),
		r.versionCommand(),
		r.docTypesCommand(),
		r.batchesCommand(),
		r.groupsCommand(),
		r.usersCommand(),
	)
	return root
}

// withApp builds the App for one command and closes it afterwards
func (r *runner) withApp(ctx context.Context, fn func(a *app.App) error) error {
	deps := r.deps.App
	if r.apiURL != "" {
		deps.BaseURL = r.apiURL
	}
	a, err := app.New(ctx, deps)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close session storage")
		}
	}()

	unsubscribe := a.Router.OnNavigate(func(route string) {
		if route == navigation.RouteHome {
			r.sessionEnded.Store(true)
		}
	})
	defer unsubscribe()

	return fn(a)
}

// withAdmin is withApp behind the admin area guard
func (r *runner) withAdmin(ctx context.Context, fn func(a *app.App) error) error {
	return r.withApp(ctx, func(a *app.App) error {
		if err := navigation.RequireAdmin(a.Session.Snapshot()); err != nil {
			if errors.Is(err, errors.ErrNotAuthenticated) {
				return fmt.Errorf("%w: run 'docadmin login' first", err)
			}
			return err
		}
		return fn(a)
	})
}

// render writes v as indented JSON with --json, otherwise calls human
func (r *runner) render(v any, human func(w io.Writer)) error {
	if r.jsonOutput {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.deps.Stdout, string(data))
		return err
	}
	human(r.deps.Stdout)
	return nil
}

// table writes tab separated rows aligned into columns
func table(w io.Writer, header string, rows ...string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, row := range rows {
		fmt.Fprintln(tw, row)
	}
	tw.Flush()
}

func (r *runner) done(format string, args ...any) {
	if r.jsonOutput {
		return
	}
	fmt.Fprintf(r.deps.Stdout, format+"\n", args...)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", arg, errors.ErrValidation)
	}
	return id, nil
}
