package groups

import (
	"context"

	"github.com/jrsteele09/go-docadmin/paging"
)

type Repo interface {
	List(ctx context.Context, params paging.Params) (*paging.Paged[Group], error)
	Get(ctx context.Context, id int64) (*Group, error)
	Create(ctx context.Context, req CreateRequest) (*Group, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Group, error)
	Delete(ctx context.Context, id int64) error
	ListAllBatchesAsPermissions(ctx context.Context) ([]BatchPermission, error)
}
