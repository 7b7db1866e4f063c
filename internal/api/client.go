// Package api implements the generic REST resource client used to talk to the
// catalog backend. One Client wraps one collection endpoint and translates
// HTTP outcomes into the typed errors defined in errors.go. The client never
// retries; retry policy belongs to callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Client is a typed CRUD wrapper over a single collection endpoint.
type Client[T any] struct {
	baseURL    string
	collection string
	httpc      *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for {baseURL}/{collection}.
func NewClient[T any](baseURL, collection string, httpc *http.Client, logger *zap.Logger) *Client[T] {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client[T]{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		httpc:      httpc,
		logger:     logger,
	}
}

// Attachment is a binary asset accompanying a multipart update.
type Attachment struct {
	Field    string
	Filename string
	Content  io.Reader
}

func (c *Client[T]) collectionURL() string {
	return c.baseURL + "/" + c.collection
}

func (c *Client[T]) recordURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

// List fetches the full collection.
func (c *Client[T]) List(ctx context.Context) ([]T, error) {
	u := c.collectionURL()
	resp, err := c.do(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, &HTTPError{Status: resp.StatusCode, URL: u}
	}

	var records []T
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &DecodeError{URL: u, Err: err}
	}
	return records, nil
}

// Get fetches a single record. A 4xx status means the backend does not know
// the id and maps to ErrNotFound.
func (c *Client[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	u := c.recordURL(id)
	resp, err := c.do(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	switch {
	case success(resp.StatusCode):
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return zero, fmt.Errorf("%s %s: %w", c.collection, id, ErrNotFound)
	default:
		return zero, &HTTPError{Status: resp.StatusCode, URL: u}
	}

	var record T
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return zero, &DecodeError{URL: u, Err: err}
	}
	return record, nil
}

// Create submits a new record. The caller supplies the allocated id as part
// of the payload; the backend echoes the stored record.
func (c *Client[T]) Create(ctx context.Context, payload T) (T, error) {
	var zero T
	u := c.collectionURL()
	body, err := json.Marshal(payload)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s payload: %w", c.collection, err)
	}

	resp, err := c.do(ctx, http.MethodPost, u, bytes.NewReader(body), "application/json")
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return zero, &ValidationError{Status: resp.StatusCode, URL: u}
	}

	var record T
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return zero, &DecodeError{URL: u, Err: err}
	}
	return record, nil
}

// Update replaces a record with a plain JSON encoding.
func (c *Client[T]) Update(ctx context.Context, id string, payload T) (T, error) {
	var zero T
	u := c.recordURL(id)
	body, err := json.Marshal(payload)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s payload: %w", c.collection, err)
	}

	resp, err := c.do(ctx, http.MethodPut, u, bytes.NewReader(body), "application/json")
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	switch {
	case success(resp.StatusCode):
	case resp.StatusCode == http.StatusNotFound:
		return zero, fmt.Errorf("%s %s: %w", c.collection, id, ErrNotFound)
	default:
		return zero, &ValidationError{Status: resp.StatusCode, URL: u}
	}

	var record T
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return zero, &DecodeError{URL: u, Err: err}
	}
	return record, nil
}

// UpdateMultipart replaces a record using a multipart encoding. It is used
// when a new binary asset accompanies the payload: the structured fields and
// the attachment are sent as form parts instead of a JSON body.
func (c *Client[T]) UpdateMultipart(ctx context.Context, id string, fields map[string]string, att Attachment) (T, error) {
	var zero T
	u := c.recordURL(id)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := w.WriteField(name, fields[name]); err != nil {
			return zero, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	part, err := w.CreateFormFile(att.Field, att.Filename)
	if err != nil {
		return zero, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, att.Content); err != nil {
		return zero, fmt.Errorf("failed to copy attachment: %w", err)
	}
	if err := w.Close(); err != nil {
		return zero, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPut, u, &buf, w.FormDataContentType())
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	switch {
	case success(resp.StatusCode):
	case resp.StatusCode == http.StatusNotFound:
		return zero, fmt.Errorf("%s %s: %w", c.collection, id, ErrNotFound)
	default:
		return zero, &ValidationError{Status: resp.StatusCode, URL: u}
	}

	var record T
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return zero, &DecodeError{URL: u, Err: err}
	}
	return record, nil
}

// Remove deletes a record. Deletes are not masked: removing an id the backend
// no longer knows surfaces ErrNotFound.
func (c *Client[T]) Remove(ctx context.Context, id string) error {
	u := c.recordURL(id)
	resp, err := c.do(ctx, http.MethodDelete, u, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case success(resp.StatusCode):
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", c.collection, id, ErrNotFound)
	default:
		return &HTTPError{Status: resp.StatusCode, URL: u}
	}
}

func (c *Client[T]) do(ctx context.Context, method, u string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("Request failed",
			zap.String("method", method),
			zap.String("url", u),
			zap.Error(err),
		)
		return nil, &NetworkError{Op: method, URL: u, Err: err}
	}
	return resp, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}
