package batches

import (
	"context"

	"github.com/jrsteele09/go-docadmin/paging"
)

type Repo interface {
	List(ctx context.Context, params paging.Params) (*paging.PageResponse[ListItem], error)
	Get(ctx context.Context, id int64) (*Batch, error)
	Create(ctx context.Context, req SaveRequest) (*Batch, error)
	Update(ctx context.Context, id int64, req SaveRequest) (*Batch, error)
	Delete(ctx context.Context, id int64) error
	ListActiveDocTypes(ctx context.Context) ([]DocTypeRef, error)
	ListActiveDocTypesFull(ctx context.Context) ([]DocTypeWithFields, error)
}
