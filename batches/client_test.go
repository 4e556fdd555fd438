package batches_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-docadmin/batches"
	"github.com/jrsteele09/go-docadmin/documenttypes"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/internal/testbackend"
	"github.com/jrsteele09/go-docadmin/internal/utils"
	"github.com/jrsteele09/go-docadmin/paging"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	ctx := context.Background()
	gw, _ := testbackend.Start(t).AdminGateway(t)
	c := batches.NewClient(gw)
	docTypes := documenttypes.NewClient(gw)

	dt, err := docTypes.Create(ctx, documenttypes.DocumentType{
		DepartmentID: 1,
		Name:         "Invoice",
		IndexingFields: []documenttypes.IndexingField{
			{Name: "vendor", DisplayName: "Vendor", Visible: true},
			{Name: "internal", DisplayName: "Internal", Visible: false},
		},
	})
	require.NoError(t, err)

	t.Run("create and get", func(t *testing.T) {
		created, err := c.Create(ctx, batches.SaveRequest{
			DepartmentName:          utils.Ptr("Finance"),
			Name:                    "Morning scan",
			Workflow:                []batches.WorkflowStep{batches.StepScan, batches.StepIndex},
			Separation:              batches.Separation{Method: batches.SeparationNumberOfPages, Info: utils.Ptr("2")},
			QualityPercentage:       utils.Ptr(10),
			SelectedDocumentTypeIDs: []int64{dt.ID},
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		require.Equal(t, batches.SeparationNumberOfPages, created.SeparationMethod)
		require.Equal(t, "2", utils.Value(created.SeparationInfo))
		require.Equal(t, []batches.DocTypeRef{{ID: dt.ID, Name: "Invoice"}}, created.SelectedDocumentTypes)

		got, err := c.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created, got)

		req := got.ToSaveRequest()
		req.Name = "Evening scan"
		updated, err := c.Update(ctx, got.ID, req)
		require.NoError(t, err)
		require.Equal(t, "Evening scan", updated.Name)
		require.Equal(t, created.SelectedDocumentTypes, updated.SelectedDocumentTypes)
	})

	t.Run("separation defaults to none", func(t *testing.T) {
		created, err := c.Create(ctx, batches.SaveRequest{Name: "Plain"})
		require.NoError(t, err)
		require.Equal(t, batches.SeparationNone, created.SeparationMethod)
		require.Empty(t, created.SelectedDocumentTypes)
	})

	t.Run("list pages and filters", func(t *testing.T) {
		page, err := c.List(ctx, paging.Params{})
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Equal(t, 20, page.PageSize)
		require.Equal(t, 2, page.Total)

		page, err = c.List(ctx, paging.Params{Q: "plain"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		require.Equal(t, "Plain", page.Items[0].Name)

		page, err = c.List(ctx, paging.Params{Page: 2, Size: 1})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		require.Equal(t, 2, page.Total)
	})

	t.Run("active doc types", func(t *testing.T) {
		full, err := c.ListActiveDocTypesFull(ctx)
		require.NoError(t, err)
		require.Len(t, full, 1)
		require.Len(t, full[0].FieldsVisibleToUser, 1)
		require.Equal(t, "vendor", full[0].FieldsVisibleToUser[0].Name)

		brief, err := c.ListActiveDocTypes(ctx)
		require.NoError(t, err)
		require.Equal(t, []batches.DocTypeRef{{ID: dt.ID, Name: "Invoice"}}, brief)
	})

	t.Run("validation and delete", func(t *testing.T) {
		_, err := c.Create(ctx, batches.SaveRequest{})
		require.ErrorIs(t, err, errors.ErrValidation)

		page, err := c.List(ctx, paging.Params{Q: "plain"})
		require.NoError(t, err)
		require.NoError(t, c.Delete(ctx, page.Items[0].ID))
		require.ErrorIs(t, c.Delete(ctx, page.Items[0].ID), errors.ErrNotFound)
	})
}
