// Package graph is a thin HTTP client for the Microsoft Graph directory API.
//
// It covers exactly the surface the CLI needs: group lookup and creation,
// membership listing and addition, the signed-in principal, and the
// role-management (PIM) schedule endpoints. List responses use the OData
// envelope and are depaginated before being returned to callers.
package graph

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
)

// apiVersion is the Graph version prefix applied to every request path.
const apiVersion = "/v1.0"

// Client calls the Graph API with a bearer token.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a Client for the given host and access token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Do performs a request against the versioned API path. The body, when
// non-nil, is JSON-encoded. The caller owns the response body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	u := c.BaseURL + apiVersion + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// getJSON performs a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	resp, err := c.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := CheckError(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// postJSON performs a POST and, when out is non-nil, decodes the response.
func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	resp, err := c.Do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := CheckError(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// listPage is the OData envelope wrapping every collection response.
type listPage struct {
	NextLink string          `json:"@odata.nextLink"`
	Value    json.RawMessage `json:"value"`
}

// listAll fetches a collection path and every @odata.nextLink page after
// it, handing each page's raw value array to appendPage.
func (c *Client) listAll(ctx context.Context, path string, query url.Values, appendPage func(json.RawMessage) error) error {
	next := c.BaseURL + apiVersion + path
	if len(query) > 0 {
		next += "?" + query.Encode()
	}
	for next != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, next, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.Token)
		}
		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("GET %s: %w", path, err)
		}
		page, err := func() (*listPage, error) {
			defer resp.Body.Close()
			if err := CheckError(resp); err != nil {
				return nil, err
			}
			var p listPage
			if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
				return nil, fmt.Errorf("decode page: %w", err)
			}
			return &p, nil
		}()
		if err != nil {
			return err
		}
		if len(page.Value) > 0 {
			if err := appendPage(page.Value); err != nil {
				return err
			}
		}
		next = page.NextLink
	}
	return nil
}

// escapeFilterValue doubles single quotes for use inside an OData
// $filter string literal.
func escapeFilterValue(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
