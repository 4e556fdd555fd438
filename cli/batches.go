package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jrsteele09/go-docadmin/app"
	"github.com/jrsteele09/go-docadmin/batches"
	"github.com/jrsteele09/go-docadmin/internal/utils"
	"github.com/jrsteele09/go-docadmin/paging"
	"github.com/spf13/cobra"
)

func pagingFlags(cmd *cobra.Command, p *paging.Params) {
	cmd.Flags().StringVarP(&p.Q, "query", "q", "", "Filter by name")
	cmd.Flags().IntVar(&p.Page, "page", 0, "Page to fetch (endpoint default when unset)")
	cmd.Flags().IntVar(&p.Size, "size", 0, "Page size (endpoint default when unset)")
}

func (r *runner) batchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Manage batch classes",
	}

	var params paging.Params
	list := &cobra.Command{
		Use:   "list",
		Short: "List batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				page, err := a.Batches.List(cmd.Context(), params)
				if err != nil {
					return err
				}
				return r.render(page, func(w io.Writer) {
					rows := make([]string, 0, len(page.Items))
					for _, b := range page.Items {
						rows = append(rows, fmt.Sprintf("%d\t%s\t%s", b.ID, b.Name, utils.ValueOr(b.DepartmentName, "-")))
					}
					table(w, "ID\tNAME\tDEPARTMENT", rows...)
					fmt.Fprintf(w, "Page %d, %d of %d total\n", page.Page, len(page.Items), page.Total)
				})
			})
		},
	}
	pagingFlags(list, &params)

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				b, err := a.Batches.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				return r.renderBatch(b)
			})
		},
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a batch from a YAML or JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req batches.SaveRequest
			if err := r.readInput(createFile, &req); err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				b, err := a.Batches.Create(cmd.Context(), req)
				if err != nil {
					return err
				}
				return r.renderBatch(b)
			})
		},
	}
	create.Flags().StringVarP(&createFile, "file", "f", "", "Batch definition ('-' reads stdin)")

	var updateFile string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a batch from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req batches.SaveRequest
			if err := r.readInput(updateFile, &req); err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				b, err := a.Batches.Update(cmd.Context(), id, req)
				if err != nil {
					return err
				}
				return r.renderBatch(b)
			})
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "Batch definition ('-' reads stdin)")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				if err := a.Batches.Delete(cmd.Context(), id); err != nil {
					return err
				}
				r.done("Batch %d deleted", id)
				return nil
			})
		},
	}

	var full bool
	docTypes := &cobra.Command{
		Use:   "doctypes",
		Short: "List the active document types a batch can select",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withAdmin(cmd.Context(), func(a *app.App) error {
				if !full {
					refs, err := a.Batches.ListActiveDocTypes(cmd.Context())
					if err != nil {
						return err
					}
					return r.render(refs, func(w io.Writer) {
						rows := make([]string, 0, len(refs))
						for _, ref := range refs {
							rows = append(rows, fmt.Sprintf("%d\t%s", ref.ID, ref.Name))
						}
						table(w, "ID\tNAME", rows...)
					})
				}
				dts, err := a.Batches.ListActiveDocTypesFull(cmd.Context())
				if err != nil {
					return err
				}
				return r.render(dts, func(w io.Writer) {
					rows := make([]string, 0, len(dts))
					for _, dt := range dts {
						fields := make([]string, 0, len(dt.FieldsVisibleToUser))
						for _, f := range dt.FieldsVisibleToUser {
							fields = append(fields, f.Name)
						}
						rows = append(rows, fmt.Sprintf("%d\t%s\t%s\t%s", dt.ID, dt.Name, dt.ExportFormat, strings.Join(fields, ",")))
					}
					table(w, "ID\tNAME\tFORMAT\tVISIBLE FIELDS", rows...)
				})
			})
		},
	}
	docTypes.Flags().BoolVar(&full, "full", false, "Include visible fields and export settings")

	cmd.AddCommand(list, get, create, update, del, docTypes)
	return cmd
}

func (r *runner) renderBatch(b *batches.Batch) error {
	return r.render(b, func(w io.Writer) {
		fmt.Fprintf(w, "Batch %d: %s\n", b.ID, b.Name)
		fmt.Fprintf(w, "Department: %s\n", utils.ValueOr(b.DepartmentName, "-"))
		fmt.Fprintf(w, "Workflow:   %s\n", utils.JoinCSV(b.Workflow))
		fmt.Fprintf(w, "Separation: %s\n", b.SeparationMethod)
		names := make([]string, 0, len(b.SelectedDocumentTypes))
		for _, dt := range b.SelectedDocumentTypes {
			names = append(names, dt.Name)
		}
		fmt.Fprintf(w, "Doc types:  %s\n", strings.Join(names, ", "))
	})
}
