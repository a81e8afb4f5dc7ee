// Package search implements the sponsored-search gateway: one bounded call
// to the external shopping-search API per request, normalized into offers.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxErrorBody bounds how much of an upstream error body is kept for the
// error detail.
const maxErrorBody = 512

// Client calls a SerpAPI-compatible shopping-search endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a search client with a bounded-timeout HTTP client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// HasCredential reports whether an API key is configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// shoppingResponse is the subset of the provider response we consume. The
// result records stay untyped: field names vary by provider and are resolved
// downstream by the offer normalizer.
type shoppingResponse struct {
	ShoppingResults []map[string]any `json:"shopping_results"`
}

// Shopping runs one shopping search. A response without a result collection
// yields an empty slice, not an error.
func (c *Client) Shopping(ctx context.Context, query string) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("engine", "google_shopping")
	q.Set("q", query)
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, detail)
	}

	var body shoppingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if body.ShoppingResults == nil {
		return []map[string]any{}, nil
	}
	return body.ShoppingResults, nil
}
