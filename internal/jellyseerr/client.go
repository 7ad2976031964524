// Package jellyseerr is a minimal client for the companion request service:
// title search and request submission, nothing more. Calls are bounded by a
// fixed timeout and never retried, since a request submission is not
// idempotent-safe.
package jellyseerr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/haylibi/jellio-plus/internal/config"
)

const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: config.JellyseerrTimeout},
	}
}

// SearchResult is one entry of a search response. Only the fields the
// identifier-resolution fallback scans are decoded.
type SearchResult struct {
	Id        int    `json:"id"`
	MediaType string `json:"mediaType"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// MediaRequest is the body of a request submission. Seasons is nil for movies
// and for series requests without a season; otherwise it names whole seasons.
type MediaRequest struct {
	MediaType string `json:"mediaType"`
	MediaId   int    `json:"mediaId"`
	Seasons   []int  `json:"seasons"`
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
}

// Search queries the request service by title.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	endpoint := fmt.Sprintf("%s/api/v1/search?query=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("Search: failed to build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode > 299 {
		return nil, fmt.Errorf("Search: status %d: %s", resp.StatusCode, resp.Status)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("Search: failed to unmarshal response body: %w", err)
	}

	return result.Results, nil
}

// MatchResult returns the id of the first search result whose media type
// equals mediaType, case-insensitively. List order decides between multiple
// matches.
func MatchResult(results []SearchResult, mediaType string) (int, bool) {
	for _, r := range results {
		if r.MediaType != "" && strings.EqualFold(r.MediaType, mediaType) {
			return r.Id, true
		}
	}
	return 0, false
}

// CreateRequest submits an acquisition request and returns the upstream status
// code. A non-nil error means the service could not be reached at all; status
// classification is left to the caller.
func (c *Client) CreateRequest(ctx context.Context, request MediaRequest) (int, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return 0, fmt.Errorf("CreateRequest: failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/request", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("CreateRequest: failed to build request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("CreateRequest: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
