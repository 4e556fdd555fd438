package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jrsteele09/go-docadmin/app"
	"github.com/jrsteele09/go-docadmin/groups"
	"github.com/jrsteele09/go-docadmin/internal/utils"
	"github.com/jrsteele09/go-docadmin/paging"
	"github.com/jrsteele09/go-docadmin/users"
	"github.com/spf13/cobra"
)

func (r *runner) groupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage access groups and their batch permissions",
	}

	var params paging.Params
	list := &cobra.Command{
		Use:   "list",
		Short: "List access groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				page, err := a.Groups.List(cmd.Context(), params)
				if err != nil {
					return err
				}
				return r.render(page, func(w io.Writer) {
					rows := make([]string, 0, len(page.Content))
					for _, g := range page.Content {
						rows = append(rows, fmt.Sprintf("%d\t%s\t%d", g.ID, g.Name, len(g.BatchPermissions)))
					}
					table(w, "ID\tNAME\tBATCHES", rows...)
					printPaged(w, page.Number, page.TotalPages, page.TotalElements)
				})
			})
		},
	}
	pagingFlags(list, &params)

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one access group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				g, err := a.Groups.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				return r.renderGroup(g)
			})
		},
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an access group from a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req groups.CreateRequest
			if err := r.readInput(createFile, &req); err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				g, err := a.Groups.Create(cmd.Context(), req)
				if err != nil {
					return err
				}
				return r.renderGroup(g)
			})
		},
	}
	create.Flags().StringVarP(&createFile, "file", "f", "", "Group definition ('-' reads stdin)")

	var updateFile string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Update an access group from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req groups.UpdateRequest
			if err := r.readInput(updateFile, &req); err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				g, err := a.Groups.Update(cmd.Context(), id, req)
				if err != nil {
					return err
				}
				return r.renderGroup(g)
			})
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "Fields to change ('-' reads stdin)")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an access group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				if err := a.Groups.Delete(cmd.Context(), id); err != nil {
					return err
				}
				r.done("Group %d deleted", id)
				return nil
			})
		},
	}

	permissions := &cobra.Command{
		Use:   "permissions",
		Short: "List every batch as an unassigned permission template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				perms, err := a.Groups.ListAllBatchesAsPermissions(cmd.Context())
				if err != nil {
					return err
				}
				return r.render(perms, func(w io.Writer) {
					permissionTable(w, perms)
				})
			})
		},
	}

	cmd.AddCommand(list, get, create, update, del, permissions)
	return cmd
}

func (r *runner) usersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	var params paging.Params
	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				page, err := a.Users.List(cmd.Context(), params)
				if err != nil {
					return err
				}
				return r.render(page, func(w io.Writer) {
					rows := make([]string, 0, len(page.Content))
					for _, u := range page.Content {
						rows = append(rows, fmt.Sprintf("%d\t%s\t%s\t%s\t%s", u.ID, u.Username, utils.ValueOr(u.FullName, "-"), utils.JoinCSV(u.Roles), strings.Join(u.Groups, ",")))
					}
					table(w, "ID\tUSERNAME\tFULL NAME\tROLES\tGROUPS", rows...)
					printPaged(w, page.Number, page.TotalPages, page.TotalElements)
				})
			})
		},
	}
	pagingFlags(list, &params)

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				u, err := a.Users.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				return r.renderUser(u)
			})
		},
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user from a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req users.CreateRequest
			if err := r.readInput(createFile, &req); err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				u, err := a.Users.Create(cmd.Context(), req)
				if err != nil {
					return err
				}
				return r.renderUser(u)
			})
		},
	}
	create.Flags().StringVarP(&createFile, "file", "f", "", "User definition ('-' reads stdin)")

	var updateFile string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Update a user from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req users.UpdateRequest
			if err := r.readInput(updateFile, &req); err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				u, err := a.Users.Update(cmd.Context(), id, req)
				if err != nil {
					return err
				}
				return r.renderUser(u)
			})
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "Fields to change ('-' reads stdin)")

	cmd.AddCommand(list, get, create, update)
	return cmd
}

func (r *runner) renderGroup(g *groups.Group) error {
	return r.render(g, func(w io.Writer) {
		fmt.Fprintf(w, "Group %d: %s\n", g.ID, g.Name)
		permissionTable(w, g.BatchPermissions)
	})
}

func (r *runner) renderUser(u *users.User) error {
	return r.render(u, func(w io.Writer) {
		fmt.Fprintf(w, "User %d: %s\n", u.ID, u.Username)
		fmt.Fprintf(w, "Full name:    %s\n", utils.Value(u.FullName))
		fmt.Fprintf(w, "Roles:        %s\n", utils.JoinCSV(u.Roles))
		fmt.Fprintf(w, "Groups:       %s\n", strings.Join(u.Groups, ", "))
		if u.DailyTargetMinutes != nil {
			fmt.Fprintf(w, "Daily target: %d min\n", *u.DailyTargetMinutes)
		}
	})
}

func permissionTable(w io.Writer, perms []groups.BatchPermission) {
	rows := make([]string, 0, len(perms))
	for _, p := range perms {
		rows = append(rows, fmt.Sprintf("%d\t%s\t%t\t%t\t%t", p.BatchID, p.BatchName, p.Scan, p.Index, p.Quality))
	}
	table(w, "BATCH\tNAME\tSCAN\tINDEX\tQUALITY", rows...)
}

// printPaged reports a zero-based page as one-based for people
func printPaged(w io.Writer, number, totalPages, totalElements int) {
	fmt.Fprintf(w, "Page %d of %d, %d total\n", number+1, max(totalPages, 1), totalElements)
}
