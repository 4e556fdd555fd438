package documenttypes_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-docadmin/documenttypes"
	"github.com/jrsteele09/go-docadmin/gateway"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/internal/testbackend"
	"github.com/jrsteele09/go-docadmin/internal/utils"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *documenttypes.Client {
	t.Helper()
	gw, _ := testbackend.Start(t).AdminGateway(t)
	return documenttypes.NewClient(gw)
}

func invoice() documenttypes.DocumentType {
	return documenttypes.DocumentType{
		DepartmentID:   7,
		Name:           "Invoice",
		FolderTemplate: utils.Ptr("{year}/{vendor}"),
		ExportFormat:   documenttypes.ExportPDFA,
		IndexingFields: []documenttypes.IndexingField{
			{Name: "vendor", DisplayName: "Vendor", Type: documenttypes.FieldText, Required: true, Visible: true},
			{Name: "kind", DisplayName: "Kind", Type: documenttypes.FieldOptions, Visible: true, Options: []string{"A", "B"}},
		},
	}
}

func TestClient_Lifecycle(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	created, err := c.Create(ctx, invoice())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, documenttypes.StatusActive, created.Status)
	require.Equal(t, documenttypes.ExportFilesystem, created.ExportType)
	require.Equal(t, documenttypes.ColorHigh16, created.ColorFormat)
	require.Equal(t, "{year}/{vendor}", utils.Value(created.FolderTemplate))
	require.Len(t, created.IndexingFields, 2)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Invoice", got.Name)

	got.Name = "Supplier invoice"
	updated, err := c.Update(ctx, got.ID, *got)
	require.NoError(t, err)
	require.Equal(t, "Supplier invoice", updated.Name)

	active, err := c.ListByDepartment(ctx, 7)
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, c.SoftDelete(ctx, created.ID))
	active, err = c.ListByDepartment(ctx, 7)
	require.NoError(t, err)
	require.Empty(t, active)
	deleted, err := c.ListDeleted(ctx, 7)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	require.Equal(t, documenttypes.StatusInactive, deleted[0].Status)

	require.NoError(t, c.Restore(ctx, created.ID))
	active, err = c.ListByDepartment(ctx, 7)
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, c.HardDelete(ctx, created.ID))
	_, err = c.Get(ctx, created.ID)
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestClient_CreateLeavesInputUntouched(t *testing.T) {
	c := newClient(t)
	in := invoice()
	in.IndexingFields[0].Type = ""

	created, err := c.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, documenttypes.FieldText, created.IndexingFields[0].Type)
	require.Empty(t, in.IndexingFields[0].Type)
	require.Empty(t, in.ExportType)
}

func TestClient_Errors(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	t.Run("name required", func(t *testing.T) {
		dt := invoice()
		dt.Name = " "
		_, err := c.Create(ctx, dt)
		require.ErrorIs(t, err, errors.ErrValidation)
	})

	t.Run("field name required", func(t *testing.T) {
		dt := invoice()
		dt.IndexingFields[1].Name = ""
		_, err := c.Create(ctx, dt)
		require.ErrorIs(t, err, errors.ErrValidation)
		require.Contains(t, err.Error(), "indexingFields[1].name")
	})

	t.Run("duplicate name surfaces the backend message", func(t *testing.T) {
		_, err := c.Create(ctx, invoice())
		require.NoError(t, err)
		_, err = c.Create(ctx, invoice())
		require.ErrorIs(t, err, errors.ErrConflict)
		require.Equal(t, "Document type name already exists in this department", gateway.UserMessage(err))
	})

	t.Run("unknown id", func(t *testing.T) {
		err := c.Restore(ctx, 999)
		require.ErrorIs(t, err, errors.ErrNotFound)
	})
}
