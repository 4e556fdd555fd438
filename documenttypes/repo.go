package documenttypes

import "context"

type Repo interface {
	ListByDepartment(ctx context.Context, departmentID int64) ([]DocumentType, error)
	ListDeleted(ctx context.Context, departmentID int64) ([]DocumentType, error)
	Get(ctx context.Context, id int64) (*DocumentType, error)
	Create(ctx context.Context, dt DocumentType) (*DocumentType, error)
	Update(ctx context.Context, id int64, dt DocumentType) (*DocumentType, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
}
