package gateway

import (
	"context"
	"net/http"
	"net/url"
)

// DoJSON sends body as JSON and decodes the reply into out (either may be nil)
func DoJSON(ctx context.Context, s Sender, method, path string, query url.Values, body, out any) error {
	resp, err := s.Send(ctx, &Request{Method: method, Path: path, Query: query, Body: body})
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func GetJSON(ctx context.Context, s Sender, path string, query url.Values, out any) error {
	return DoJSON(ctx, s, http.MethodGet, path, query, nil, out)
}

func PostJSON(ctx context.Context, s Sender, path string, body, out any) error {
	return DoJSON(ctx, s, http.MethodPost, path, nil, body, out)
}

func PutJSON(ctx context.Context, s Sender, path string, body, out any) error {
	return DoJSON(ctx, s, http.MethodPut, path, nil, body, out)
}

func Delete(ctx context.Context, s Sender, path string) error {
	return DoJSON(ctx, s, http.MethodDelete, path, nil, nil, nil)
}
