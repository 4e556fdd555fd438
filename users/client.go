package users

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-docadmin/gateway"
	"github.com/jrsteele09/go-docadmin/paging"
)

const (
	basePath = "/api/admin/access/users"

	defaultPage = 0
	defaultSize = 50
)

var _ UserRepo = (*Client)(nil)

// Client calls the user administration endpoints through the gateway
type Client struct {
	sender gateway.Sender
}

func NewClient(sender gateway.Sender) *Client {
	return &Client{sender: sender}
}

// List returns one page of users; pages are zero-based
func (c *Client) List(ctx context.Context, params paging.Params) (*paging.Paged[User], error) {
	var out paging.Paged[User]
	if err := gateway.GetJSON(ctx, c.sender, basePath, params.Values(defaultPage, defaultSize), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := gateway.GetJSON(ctx, c.sender, fmt.Sprintf("%s/%d", basePath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out User
	if err := gateway.PostJSON(ctx, c.sender, basePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int64, req UpdateRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out User
	if err := gateway.PutJSON(ctx, c.sender, fmt.Sprintf("%s/%d", basePath, id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
