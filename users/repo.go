package users

import (
	"context"

	"github.com/jrsteele09/go-docadmin/paging"
)

type UserRepo interface {
	List(ctx context.Context, params paging.Params) (*paging.Paged[User], error)
	Get(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, req CreateRequest) (*User, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*User, error)
}
