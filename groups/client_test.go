package groups_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/go-docadmin/batches"
	"github.com/jrsteele09/go-docadmin/gateway"
	"github.com/jrsteele09/go-docadmin/groups"
	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/internal/testbackend"
	"github.com/jrsteele09/go-docadmin/internal/utils"
	"github.com/jrsteele09/go-docadmin/paging"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	ctx := context.Background()
	gw, _ := testbackend.Start(t).AdminGateway(t)
	c := groups.NewClient(gw)

	batch, err := batches.NewClient(gw).Create(ctx, batches.SaveRequest{Name: "Morning scan"})
	require.NoError(t, err)

	perms, err := c.ListAllBatchesAsPermissions(ctx)
	require.NoError(t, err)
	require.Equal(t, []groups.BatchPermission{{BatchID: batch.ID, BatchName: "Morning scan"}}, perms)

	perms[0].Scan = true
	created, err := c.Create(ctx, groups.CreateRequest{Name: "Scanners", BatchPermissions: perms})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.True(t, created.BatchPermissions[0].Scan)
	require.False(t, created.BatchPermissions[0].Quality)

	t.Run("get", func(t *testing.T) {
		got, err := c.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, created, got)
	})

	t.Run("partial update keeps permissions", func(t *testing.T) {
		updated, err := c.Update(ctx, created.ID, groups.UpdateRequest{Name: utils.Ptr("Day scanners")})
		require.NoError(t, err)
		require.Equal(t, "Day scanners", updated.Name)
		require.Len(t, updated.BatchPermissions, 1)
	})

	t.Run("list", func(t *testing.T) {
		_, err := c.Create(ctx, groups.CreateRequest{Name: "Reviewers"})
		require.NoError(t, err)

		page, err := c.List(ctx, paging.Params{})
		require.NoError(t, err)
		require.Equal(t, 0, page.Number)
		require.Equal(t, 50, page.Size)
		require.Equal(t, 2, page.TotalElements)
		require.Equal(t, 1, page.TotalPages)

		page, err = c.List(ctx, paging.Params{Q: "review"})
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		require.Equal(t, "Reviewers", page.Content[0].Name)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := c.Create(ctx, groups.CreateRequest{})
		require.ErrorIs(t, err, errors.ErrValidation)

		_, err = c.Update(ctx, created.ID, groups.UpdateRequest{Name: utils.Ptr("")})
		require.ErrorIs(t, err, errors.ErrValidation)

		_, err = c.Create(ctx, groups.CreateRequest{Name: "Reviewers"})
		require.ErrorIs(t, err, errors.ErrConflict)
		require.Equal(t, "Group name already exists", gateway.UserMessage(err))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, c.Delete(ctx, created.ID))
		_, err := c.Get(ctx, created.ID)
		require.ErrorIs(t, err, errors.ErrNotFound)
	})
}
