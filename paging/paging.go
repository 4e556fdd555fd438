// Package paging holds the two list envelopes the backend uses and the
// query parameters that select a page.
package paging

import (
	"net/url"
	"strconv"
)

// PageResponse is the one-based envelope used by /api/batches
type PageResponse[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Paged is the zero-based envelope used by the access endpoints
type Paged[T any] struct {
	Content       []T `json:"content"`
	Number        int `json:"number"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// Params selects a page. Zero Page and Size take the endpoint's defaults.
type Params struct {
	Q    string
	Page int
	Size int
}

// Values encodes p, filling page and size from the defaults when unset.
// An empty Q is left out.
func (p Params) Values(defaultPage, defaultSize int) url.Values {
	page, size := p.Page, p.Size
	if page <= 0 {
		page = defaultPage
	}
	if size <= 0 {
		size = defaultSize
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("size", strconv.Itoa(size))
	if p.Q != "" {
		v.Set("q", p.Q)
	}
	return v
}
