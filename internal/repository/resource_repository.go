package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/noah-isme/eschool-portal/pkg/apiclient"
	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

// ResourceRepository performs CRUD against one backend collection such as /api/students/.
type ResourceRepository[T any] struct {
	client *apiclient.Client
	path   string
}

// NewResourceRepository constructs a repository rooted at path. A trailing slash is enforced.
func NewResourceRepository[T any](client *apiclient.Client, path string) *ResourceRepository[T] {
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return &ResourceRepository[T]{client: client, path: path}
}

// Path returns the collection path.
func (r *ResourceRepository[T]) Path() string { return r.path }

func (r *ResourceRepository[T]) itemPath(id string) string {
	return r.path + url.PathEscape(id) + "/"
}

// List fetches the collection. Both a bare array and a paginated {"results": [...]} body are accepted.
func (r *ResourceRepository[T]) List(ctx context.Context, tokens apiclient.TokenSource, query url.Values) ([]T, error) {
	resp, err := r.client.Do(ctx, tokens, &apiclient.Request{Method: http.MethodGet, Path: r.path, Query: query})
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := apiclient.DecodeJSON(resp, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw, r.path)
}

// Get fetches one record.
func (r *ResourceRepository[T]) Get(ctx context.Context, tokens apiclient.TokenSource, id string) (*T, error) {
	path := r.itemPath(id)
	resp, err := r.client.Do(ctx, tokens, &apiclient.Request{Method: http.MethodGet, Path: path, Route: r.path + ":id/"})
	if err != nil {
		return nil, err
	}
	var item T
	if err := apiclient.DecodeJSON(resp, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts a new record and returns the stored representation.
func (r *ResourceRepository[T]) Create(ctx context.Context, tokens apiclient.TokenSource, item *T) (*T, error) {
	req, err := apiclient.NewJSONRequest(http.MethodPost, r.path, item)
	if err != nil {
		return nil, err
	}
	return r.write(ctx, tokens, req)
}

// Update replaces a record.
func (r *ResourceRepository[T]) Update(ctx context.Context, tokens apiclient.TokenSource, id string, item *T) (*T, error) {
	req, err := apiclient.NewJSONRequest(http.MethodPut, r.itemPath(id), item)
	if err != nil {
		return nil, err
	}
	req.Route = r.path + ":id/"
	return r.write(ctx, tokens, req)
}

func (r *ResourceRepository[T]) write(ctx context.Context, tokens apiclient.TokenSource, req *apiclient.Request) (*T, error) {
	resp, err := r.client.Do(ctx, tokens, req)
	if err != nil {
		return nil, err
	}
	var stored T
	if err := apiclient.DecodeJSON(resp, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Delete removes a record.
func (r *ResourceRepository[T]) Delete(ctx context.Context, tokens apiclient.TokenSource, id string) error {
	resp, err := r.client.Do(ctx, tokens, &apiclient.Request{Method: http.MethodDelete, Path: r.itemPath(id), Route: r.path + ":id/"})
	if err != nil {
		return err
	}
	return apiclient.DecodeJSON(resp, nil)
}

// ImportCSV uploads a CSV file as multipart field "file" and returns the server's message, if any.
func (r *ResourceRepository[T]) ImportCSV(ctx context.Context, tokens apiclient.TokenSource, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("copy csv upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req := &apiclient.Request{
		Method: http.MethodPost,
		Path:   r.path + "import_csv/",
		Header: http.Header{"Content-Type": []string{writer.FormDataContentType()}},
		Body:   buf.Bytes(),
	}
	resp, err := r.client.Do(ctx, tokens, req)
	if err != nil {
		return "", err
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := apiclient.DecodeJSON(resp, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// ExportCSV downloads the collection as CSV.
func (r *ResourceRepository[T]) ExportCSV(ctx context.Context, tokens apiclient.TokenSource) ([]byte, error) {
	resp, err := r.client.Do(ctx, tokens, &apiclient.Request{Method: http.MethodGet, Path: r.path + "export_csv/"})
	if err != nil {
		return nil, err
	}
	return apiclient.ReadBody(resp)
}

func decodeList[T any](raw json.RawMessage, path string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	var items []T
	if trimmed[0] == '{' {
		var page struct {
			Results []T `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid list response from "+path)
		}
		items = page.Results
	} else if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid list response from "+path)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
