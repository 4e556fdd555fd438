package cli

import (
	"fmt"
	"io"

	"github.com/jrsteele09/go-docadmin/app"
	"github.com/jrsteele09/go-docadmin/documenttypes"
	"github.com/spf13/cobra"
)

func (r *runner) docTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doctypes",
		Aliases: []string{"document-types"},
		Short:   "Manage document types",
	}

	var departmentID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List active document types of a department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				dts, err := a.DocTypes.ListByDepartment(cmd.Context(), departmentID)
				if err != nil {
					return err
				}
				return r.renderDocTypes(dts)
			})
		},
	}
	list.Flags().Int64Var(&departmentID, "department", 0, "Department id")
	_ = list.MarkFlagRequired("department")

	var deletedDepartmentID int64
	deleted := &cobra.Command{
		Use:   "deleted",
		Short: "List soft-deleted document types of a department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				dts, err := a.DocTypes.ListDeleted(cmd.Context(), deletedDepartmentID)
				if err != nil {
					return err
				}
				return r.renderDocTypes(dts)
			})
		},
	}
	deleted.Flags().Int64Var(&deletedDepartmentID, "department", 0, "Department id")
	_ = deleted.MarkFlagRequired("department")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one document type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				dt, err := a.DocTypes.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				return r.renderDocType(dt)
			})
		},
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a document type from a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var dt documenttypes.DocumentType
			if err := r.readInput(createFile, &dt); err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				created, err := a.DocTypes.Create(cmd.Context(), dt)
				if err != nil {
					return err
				}
				return r.renderDocType(created)
			})
		},
	}
	create.Flags().StringVarP(&createFile, "file", "f", "", "Document type definition ('-' reads stdin)")

	var updateFile string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a document type from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var dt documenttypes.DocumentType
			if err := r.readInput(updateFile, &dt); err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				updated, err := a.DocTypes.Update(cmd.Context(), id, dt)
				if err != nil {
					return err
				}
				return r.renderDocType(updated)
			})
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "Document type definition ('-' reads stdin)")

	var hard bool
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Deactivate a document type (--hard removes it permanently)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				if hard {
					if err := a.DocTypes.HardDelete(cmd.Context(), id); err != nil {
						return err
					}
					r.done("Document type %d permanently deleted", id)
					return nil
				}
				if err := a.DocTypes.SoftDelete(cmd.Context(), id); err != nil {
					return err
				}
				r.done("Document type %d deactivated", id)
				return nil
			})
		},
	}
	del.Flags().BoolVar(&hard, "hard", false, "Delete permanently instead of deactivating")

	restore := &cobra.Command{
		Use:   "restore ID",
		Short: "Reactivate a soft-deleted document type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				if err := a.DocTypes.Restore(cmd.Context(), id); err != nil {
					return err
				}
				r.done("Document type %d restored", id)
				return nil
			})
		},
	}

	cmd.AddCommand(list, deleted, get, create, update, del, restore)
	return cmd
}

func (r *runner) renderDocTypes(dts []documenttypes.DocumentType) error {
	return r.render(dts, func(w io.Writer) {
		rows := make([]string, 0, len(dts))
		for _, dt := range dts {
			rows = append(rows, fmt.Sprintf("%d\t%s\t%d\t%s\t%s", dt.ID, dt.Name, len(dt.IndexingFields), dt.ExportFormat, dt.Status))
		}
		table(w, "ID\tNAME\tFIELDS\tFORMAT\tSTATUS", rows...)
	})
}

func (r *runner) renderDocType(dt *documenttypes.DocumentType) error {
	return r.render(dt, func(w io.Writer) {
		fmt.Fprintf(w, "Document type %d: %s (department %d, %s)\n", dt.ID, dt.Name, dt.DepartmentID, dt.Status)
		fmt.Fprintf(w, "Export: %s %s %s\n", dt.ExportType, dt.ExportFormat, dt.ColorFormat)
		rows := make([]string, 0, len(dt.IndexingFields))
		for _, f := range dt.IndexingFields {
			rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%t\t%t", f.Name, f.DisplayName, f.Type, f.Required, f.Visible))
		}
		table(w, "FIELD\tDISPLAY NAME\tTYPE\tREQUIRED\tVISIBLE", rows...)
	})
}
