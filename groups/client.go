package groups

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-docadmin/gateway"
	"github.com/jrsteele09/go-docadmin/paging"
)

const (
	basePath       = "/api/admin/access/groups"
	allBatchesPath = basePath + "/_all-batches"

	defaultPage = 0
	defaultSize = 50
)

var _ Repo = (*Client)(nil)

// Client calls the access group endpoints through the gateway
type Client struct {
	sender gateway.Sender
}

func NewClient(sender gateway.Sender) *Client {
	return &Client{sender: sender}
}

// List returns one page of groups; pages are zero-based
func (c *Client) List(ctx context.Context, params paging.Params) (*paging.Paged[Group], error) {
	var out paging.Paged[Group]
	if err := gateway.GetJSON(ctx, c.sender, basePath, params.Values(defaultPage, defaultSize), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*Group, error) {
	var out Group
	if err := gateway.GetJSON(ctx, c.sender, fmt.Sprintf("%s/%d", basePath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, req CreateRequest) (*Group, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.BatchPermissions == nil {
		req.BatchPermissions = []BatchPermission{}
	}
	var out Group
	if err := gateway.PostJSON(ctx, c.sender, basePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int64, req UpdateRequest) (*Group, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out Group
	if err := gateway.PutJSON(ctx, c.sender, fmt.Sprintf("%s/%d", basePath, id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return gateway.Delete(ctx, c.sender, fmt.Sprintf("%s/%d", basePath, id))
}

// ListAllBatchesAsPermissions returns every batch as an all-false permission,
// the starting point for editing a group's grants
func (c *Client) ListAllBatchesAsPermissions(ctx context.Context) ([]BatchPermission, error) {
	var out []BatchPermission
	err := gateway.GetJSON(ctx, c.sender, allBatchesPath, nil, &out)
	return out, err
}
