package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

// Client talks to a Jellyfin server's HTTP API. Every call is authenticated
// with the access token from the embedded configuration of the request being
// served; the client itself holds no credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client

	retryAttempts uint
	retryDelay    time.Duration
}

func NewClient(baseURL string, retryAttempts uint, retryDelay time.Duration) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		retryAttempts: retryAttempts,
		retryDelay:    retryDelay,
	}
}

// get performs an authenticated GET with bounded retries. 401 and 404 map to
// sentinel errors and are not retried.
func (c *Client) get(ctx context.Context, token, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var body []byte

	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return retry.Unrecoverable(fmt.Errorf("build request for %s: %w", path, err))
		}
		req.Header.Set("X-Emby-Token", token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request %s: %w", path, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return retry.Unrecoverable(fmt.Errorf("request %s: %w", path, ErrUnauthorized))
		case resp.StatusCode == http.StatusNotFound:
			return retry.Unrecoverable(fmt.Errorf("request %s: %w", path, ErrNotFound))
		case resp.StatusCode > 299:
			return fmt.Errorf("request %s: status %d: %s", path, resp.StatusCode, resp.Status)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response body for %s: %w", path, err)
		}

		return nil
	}, retry.Attempts(c.retryAttempts), retry.Delay(c.retryDelay), retry.LastErrorOnly(true))
	if err != nil {
		return nil, err
	}

	return body, nil
}

// ResolveUser maps an access token to the user owning it. This is the only
// authentication step the adapter performs.
func (c *Client) ResolveUser(ctx context.Context, token string) (*User, error) {
	body, err := c.get(ctx, token, "/Users/Me", nil)
	if err != nil {
		return nil, fmt.Errorf("ResolveUser: %w", err)
	}

	user := &User{}
	if err := json.Unmarshal(body, user); err != nil {
		return nil, fmt.Errorf("ResolveUser: failed to unmarshal response body: %w", err)
	}
	if user.Id == "" {
		return nil, fmt.Errorf("ResolveUser: %w", ErrUnauthorized)
	}

	return user, nil
}

// UserViews lists the user's top-level library views.
func (c *Client) UserViews(ctx context.Context, token, userId string) ([]Library, error) {
	params := url.Values{}
	params.Set("userId", userId)

	body, err := c.get(ctx, token, "/UserViews", params)
	if err != nil {
		return nil, fmt.Errorf("UserViews: %w", err)
	}

	var result struct {
		Items []Library `json:"Items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("UserViews: failed to unmarshal response body: %w", err)
	}

	return result.Items, nil
}

// Items runs a filtered item query.
func (c *Client) Items(ctx context.Context, token string, query ItemsQuery) ([]Item, error) {
	params := url.Values{}
	params.Set("userId", query.UserId)
	if query.ParentId != "" {
		params.Set("parentId", query.ParentId)
	}
	if len(query.IncludeItemTypes) > 0 {
		params.Set("includeItemTypes", strings.Join(query.IncludeItemTypes, ","))
	}
	if query.Recursive {
		params.Set("recursive", "true")
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.StartIndex > 0 {
		params.Set("startIndex", strconv.Itoa(query.StartIndex))
	}
	if query.SearchTerm != "" {
		params.Set("searchTerm", query.SearchTerm)
	}
	if query.ProviderIdName != "" {
		params.Set("anyProviderIdEquals", fmt.Sprintf("%s.%s", query.ProviderIdName, query.ProviderIdValue))
	}
	if len(query.Fields) > 0 {
		params.Set("fields", strings.Join(query.Fields, ","))
	}

	body, err := c.get(ctx, token, "/Items", params)
	if err != nil {
		return nil, fmt.Errorf("Items: %w", err)
	}

	var result itemsResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("Items: failed to unmarshal response body: %w", err)
	}

	return result.Items, nil
}

// ItemById fetches a single item scoped to the user's visibility.
func (c *Client) ItemById(ctx context.Context, token, userId, itemId string) (*Item, error) {
	params := url.Values{}
	params.Set("fields", "ProviderIds,Overview,Genres,MediaSources")

	body, err := c.get(ctx, token, fmt.Sprintf("/Users/%s/Items/%s", userId, itemId), params)
	if err != nil {
		return nil, fmt.Errorf("ItemById: %w", err)
	}

	item := &Item{}
	if err := json.Unmarshal(body, item); err != nil {
		return nil, fmt.Errorf("ItemById: failed to unmarshal response body: %w", err)
	}
	if item.Id == "" {
		return nil, fmt.Errorf("ItemById: %w", ErrNotFound)
	}

	return item, nil
}

// Episodes enumerates every episode of a series, unpaginated.
func (c *Client) Episodes(ctx context.Context, token, userId, seriesId string) ([]Item, error) {
	params := url.Values{}
	params.Set("userId", userId)
	params.Set("fields", "Overview,MediaSources")

	body, err := c.get(ctx, token, fmt.Sprintf("/Shows/%s/Episodes", seriesId), params)
	if err != nil {
		return nil, fmt.Errorf("Episodes: %w", err)
	}

	var result itemsResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("Episodes: failed to unmarshal response body: %w", err)
	}

	return result.Items, nil
}
