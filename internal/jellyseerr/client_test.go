package jellyseerr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/search", r.URL.Path)
		assert.Equal(t, "breaking bad", r.URL.Query().Get("query"))
		assert.Equal(t, "key123", r.Header.Get("X-Api-Key"))
		io.WriteString(w, `{"results":[{"id":1396,"mediaType":"tv"},{"id":62560,"mediaType":"movie"}]}`)
	}))
	defer srv.Close()

	results, err := NewClient(srv.URL, "key123").Search(context.Background(), "breaking bad")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1396, results[0].Id)
	assert.Equal(t, "tv", results[0].MediaType)
}

func TestSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Search(context.Background(), "anything")
	assert.Error(t, err)
}

func TestMatchResult(t *testing.T) {
	results := []SearchResult{
		{Id: 100, MediaType: "movie"},
		{Id: 200, MediaType: "tv"},
		{Id: 300, MediaType: "tv"},
	}

	id, ok := MatchResult(results, "tv")
	require.True(t, ok)
	assert.Equal(t, 200, id, "first matching-type entry in list order wins")

	id, ok = MatchResult(results, "MOVIE")
	require.True(t, ok)
	assert.Equal(t, 100, id)

	_, ok = MatchResult(results, "person")
	assert.False(t, ok)

	_, ok = MatchResult(nil, "tv")
	assert.False(t, ok)
}

func TestCreateRequest(t *testing.T) {
	var got MediaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/request", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	status, err := NewClient(srv.URL, "key").CreateRequest(context.Background(), MediaRequest{
		MediaType: MediaTypeTV,
		MediaId:   1396,
		Seasons:   []int{2},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, MediaTypeTV, got.MediaType)
	assert.Equal(t, 1396, got.MediaId)
	assert.Equal(t, []int{2}, got.Seasons)
}

func TestCreateRequestSerializesNullSeasons(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").CreateRequest(context.Background(), MediaRequest{
		MediaType: MediaTypeMovie,
		MediaId:   550,
	})
	require.NoError(t, err)
	assert.JSONEq(t, "null", string(raw["seasons"]))
}

func TestCreateRequestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL, "").CreateRequest(context.Background(), MediaRequest{
		MediaType: MediaTypeMovie,
		MediaId:   550,
	})
	assert.Error(t, err)
}
