// Package client provides a listing.Repository backed by the hustlebust
// JSON API, so the CLI can manage listings on a running server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evcraddock/hustlebust/internal/listing"
)

var _ listing.Repository = (*Client)(nil)

// Client is an HTTP client for the hustlebust API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// List returns all listings.
func (c *Client) List(ctx context.Context) ([]*listing.Listing, error) {
	var listings []*listing.Listing
	if err := c.send(ctx, http.MethodGet, "/api/listings", nil, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// Get returns one listing.
func (c *Client) Get(ctx context.Context, id string) (*listing.Listing, error) {
	var l listing.Listing
	if err := c.send(ctx, http.MethodGet, listingPath(id), nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Create adds a listing.
func (c *Client) Create(ctx context.Context, f listing.Fields) (*listing.Listing, error) {
	var l listing.Listing
	if err := c.send(ctx, http.MethodPost, "/api/listings", f, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Update changes the supplied fields of a listing.
func (c *Client) Update(ctx context.Context, id string, f listing.Fields) (*listing.Listing, error) {
	var l listing.Listing
	if err := c.send(ctx, http.MethodPut, listingPath(id), f, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Delete removes a listing.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, listingPath(id), nil, nil)
}

// Ping checks the server's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.send(ctx, http.MethodGet, "/health", nil, nil)
}

// Close is a no-op; the client holds no connection state of its own.
func (c *Client) Close(_ context.Context) error {
	return nil
}

func listingPath(id string) string {
	return "/api/listings/" + url.PathEscape(id)
}

// send performs a request with an optional JSON body and decodes the response.
func (c *Client) send(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// do executes an HTTP request and maps error responses.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", msg, listing.ErrNotFound)
		}
		return fmt.Errorf("server error: %s", msg)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
