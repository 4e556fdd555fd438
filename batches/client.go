package batches

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-docadmin/gateway"
	"github.com/jrsteele09/go-docadmin/paging"
)

const (
	basePath           = "/api/batches"
	activeDocTypesPath = "/api/user/document-types/active"

	defaultPage = 1
	defaultSize = 20
)

var _ Repo = (*Client)(nil)

// Client calls the batch endpoints through the gateway
type Client struct {
	sender gateway.Sender
}

func NewClient(sender gateway.Sender) *Client {
	return &Client{sender: sender}
}

// List returns one page of batches; pages are one-based
func (c *Client) List(ctx context.Context, params paging.Params) (*paging.PageResponse[ListItem], error) {
	var out paging.PageResponse[ListItem]
	if err := gateway.GetJSON(ctx, c.sender, basePath, params.Values(defaultPage, defaultSize), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*Batch, error) {
	var out Batch
	if err := gateway.GetJSON(ctx, c.sender, fmt.Sprintf("%s/%d", basePath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, req SaveRequest) (*Batch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out Batch
	if err := gateway.PostJSON(ctx, c.sender, basePath, req.withDefaults(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int64, req SaveRequest) (*Batch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out Batch
	if err := gateway.PutJSON(ctx, c.sender, fmt.Sprintf("%s/%d", basePath, id), req.withDefaults(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return gateway.Delete(ctx, c.sender, fmt.Sprintf("%s/%d", basePath, id))
}

// ListActiveDocTypes returns only id and name of the active document types
func (c *Client) ListActiveDocTypes(ctx context.Context) ([]DocTypeRef, error) {
	full, err := c.ListActiveDocTypesFull(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DocTypeRef, 0, len(full))
	for _, d := range full {
		out = append(out, DocTypeRef{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// ListActiveDocTypesFull includes the user-visible fields, used for naming formulas
func (c *Client) ListActiveDocTypesFull(ctx context.Context) ([]DocTypeWithFields, error) {
	var out []DocTypeWithFields
	err := gateway.GetJSON(ctx, c.sender, activeDocTypesPath, nil, &out)
	return out, err
}
