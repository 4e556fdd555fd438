package documenttypes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-docadmin/gateway"
)

const basePath = "/api/document-types"

var _ Repo = (*Client)(nil)

// Client calls the document type endpoints through the gateway
type Client struct {
	sender gateway.Sender
}

func NewClient(sender gateway.Sender) *Client {
	return &Client{sender: sender}
}

// ListByDepartment returns the department's active types
func (c *Client) ListByDepartment(ctx context.Context, departmentID int64) ([]DocumentType, error) {
	var out []DocumentType
	err := gateway.GetJSON(ctx, c.sender, fmt.Sprintf("%s/department/%d", basePath, departmentID), nil, &out)
	return out, err
}

// ListDeleted returns the department's soft deleted types
func (c *Client) ListDeleted(ctx context.Context, departmentID int64) ([]DocumentType, error) {
	var out []DocumentType
	err := gateway.GetJSON(ctx, c.sender, fmt.Sprintf("%s/department/%d/deleted", basePath, departmentID), nil, &out)
	return out, err
}

func (c *Client) Get(ctx context.Context, id int64) (*DocumentType, error) {
	var out DocumentType
	if err := gateway.GetJSON(ctx, c.sender, fmt.Sprintf("%s/%d", basePath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, dt DocumentType) (*DocumentType, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	dt.ID = 0
	var out DocumentType
	if err := gateway.PostJSON(ctx, c.sender, basePath, dt.withDefaults(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int64, dt DocumentType) (*DocumentType, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	var out DocumentType
	if err := gateway.PutJSON(ctx, c.sender, fmt.Sprintf("%s/%d", basePath, id), dt.withDefaults(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SoftDelete marks the type INACTIVE; Restore undoes it
func (c *Client) SoftDelete(ctx context.Context, id int64) error {
	return gateway.Delete(ctx, c.sender, fmt.Sprintf("%s/%d", basePath, id))
}

func (c *Client) Restore(ctx context.Context, id int64) error {
	return gateway.DoJSON(ctx, c.sender, http.MethodPost, fmt.Sprintf("%s/%d/restore", basePath, id), nil, nil, nil)
}

// HardDelete removes the type permanently
func (c *Client) HardDelete(ctx context.Context, id int64) error {
	return gateway.Delete(ctx, c.sender, fmt.Sprintf("%s/%d/hard", basePath, id))
}
