package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-docadmin/app"
	"github.com/jrsteele09/go-docadmin/auth"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/internal/utils"
	"github.com/jrsteele09/go-docadmin/session"
	"github.com/jrsteele09/go-docadmin/token"
	"github.com/spf13/cobra"
)

type whoami struct {
	Username  string         `json:"username"`
	Roles     []session.Role `json:"roles"`
	Landing   string         `json:"landing"`
	ExpiresAt *time.Time     `json:"expiresAt,omitempty"`
	Expired   bool           `json:"expired"`
	CanRenew  bool           `json:"canRenew"`
}

func (r *runner) loginCommand() *cobra.Command {
	var req auth.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long:  `Sign in with a username and password. When --password is omitted the password is read from the first line of stdin.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				line, err := bufio.NewReader(r.deps.Stdin).ReadString('\n')
				if err != nil && err != io.EOF {
					return fmt.Errorf("failed to read password: %w", err)
				}
				req.Password = strings.TrimRight(line, "\r\n")
			}
			return r.withApp(cmd.Context(), func(a *app.App) error {
				role, err := a.Auth.Login(cmd.Context(), req)
				if err != nil {
					return err
				}
				a.Router.Navigate(a.Auth.LandingRoute(role))
				s := a.Auth.Current()
				out := whoami{Username: s.Username, Roles: s.Roles, Landing: a.Router.Current(), CanRenew: s.RefreshToken != ""}
				return r.render(out, func(w io.Writer) {
					fmt.Fprintf(w, "Logged in as %s (%s)\n", s.Username, roleLabel(role))
					fmt.Fprintf(w, "Landing page: %s\n", out.Landing)
				})
			})
		},
	}
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Account password (read from stdin when omitted)")
	return cmd
}

func (r *runner) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd.Context(), func(a *app.App) error {
				if err := a.Auth.Logout(cmd.Context()); err != nil {
					return err
				}
				r.done("Logged out")
				return nil
			})
		},
	}
}

func (r *runner) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user and token expiry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd.Context(), func(a *app.App) error {
				s := a.Auth.Current()
				if !s.IsAuthenticated() {
					return fmt.Errorf("%w: run 'docadmin login' first", errors.ErrNotAuthenticated)
				}
				out := whoami{
					Username: s.Username,
					Roles:    s.Roles,
					Landing:  a.Auth.LandingRoute(s.PrimaryRole()),
					CanRenew: s.RefreshToken != "",
				}
				// opaque tokens carry no expiry
				if in, err := token.Inspect(s.AccessToken); err == nil && !in.ExpiresAt.IsZero() {
					out.ExpiresAt = utils.Ptr(in.ExpiresAt)
					out.Expired = in.Expired
				}
				return r.render(out, func(w io.Writer) {
					fmt.Fprintf(w, "Username: %s\n", out.Username)
					fmt.Fprintf(w, "Roles:    %s\n", utils.JoinCSV(out.Roles))
					fmt.Fprintf(w, "Landing:  %s\n", out.Landing)
					switch {
					case out.ExpiresAt == nil:
						fmt.Fprintln(w, "Expires:  unknown")
					case out.Expired:
						fmt.Fprintf(w, "Expires:  %s (expired)\n", out.ExpiresAt.Format(time.RFC3339))
					default:
						fmt.Fprintf(w, "Expires:  %s\n", out.ExpiresAt.Format(time.RFC3339))
					}
				})
			})
		},
	}
}

func (r *runner) refreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new access token now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd.Context(), func(a *app.App) error {
				if a.Session.RefreshToken() == "" {
					r.done("No refresh token stored; nothing to do")
					return nil
				}
				if err := a.Auth.Refresh(cmd.Context()); err != nil {
					return err
				}
				r.done("Access token refreshed")
				return nil
			})
		},
	}
}

func (r *runner) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.render(map[string]string{"version": Version}, func(w io.Writer) {
				DisplayAppname(w, "docadmin")
				fmt.Fprintf(w, "version %s\n", Version)
			})
		},
	}
}

// DisplayAppname prints the ASCII art banner
func DisplayAppname(w io.Writer, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(w, myFigure.String())
}

func roleLabel(role session.Role) string {
	if role == "" {
		return "no role"
	}
	return string(role)
}
