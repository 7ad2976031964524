package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haylibi/jellio-plus/internal/jellio"
	"github.com/haylibi/jellio-plus/internal/jellyseerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jellyseerrServer fakes the request service, capturing submitted requests and
// answering searches from a canned result list.
type jellyseerrServer struct {
	*httptest.Server

	searchResults []jellyseerr.SearchResult
	requestStatus int
	lastBody      string
	lastAPIKey    string
}

func newJellyseerrServer(t *testing.T) *jellyseerrServer {
	t.Helper()

	srv := &jellyseerrServer{requestStatus: http.StatusCreated}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.lastAPIKey = r.Header.Get("X-Api-Key")

		switch r.URL.Path {
		case "/api/v1/search":
			json.NewEncoder(w).Encode(map[string]any{"results": srv.searchResults})
		case "/api/v1/request":
			body, _ := io.ReadAll(r.Body)
			srv.lastBody = string(body)
			w.WriteHeader(srv.requestStatus)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func requestConfig(t *testing.T, jellyseerrURL string) string {
	t.Helper()
	return encodeConfig(t, &jellio.Config{
		AuthToken:         "tok",
		Libraries:         []string{movieLibraryId},
		JellyseerrEnabled: true,
		JellyseerrURL:     jellyseerrURL,
		JellyseerrAPIKey:  "seerr-key",
	})
}

func TestCreateRequestMovie(t *testing.T) {
	srv := newJellyseerrServer(t)
	h := newTestHandlers(&fakeLibrary{})
	encoded := requestConfig(t, srv.URL)

	resp := doRequest(t, h, "/"+encoded+"/jellyseerr?type=movie&tmdbId=603")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "successfully")
	assert.Equal(t, "seerr-key", srv.lastAPIKey)
	assert.JSONEq(t, `{"mediaType":"movie","mediaId":603,"seasons":null}`, srv.lastBody)
}

func TestCreateRequestTVWholeSeason(t *testing.T) {
	srv := newJellyseerrServer(t)
	h := newTestHandlers(&fakeLibrary{})
	encoded := requestConfig(t, srv.URL)

	// The episode parameter must not narrow the request below a season.
	resp := doRequest(t, h, "/"+encoded+"/jellyseerr?type=tv&tmdbId=1399&season=2&episode=7")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"mediaType":"tv","mediaId":1399,"seasons":[2]}`, srv.lastBody)
}

func TestCreateRequestResolvesTitleThroughSearch(t *testing.T) {
	srv := newJellyseerrServer(t)
	srv.searchResults = []jellyseerr.SearchResult{
		{Id: 100, MediaType: "movie"},
		{Id: 200, MediaType: "tv"},
		{Id: 300, MediaType: "tv"},
	}
	h := newTestHandlers(&fakeLibrary{})
	encoded := requestConfig(t, srv.URL)

	resp := doRequest(t, h, "/"+encoded+"/jellyseerr?type=tv&title=game+of+thrones")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"mediaType":"tv","mediaId":200,"seasons":null}`, srv.lastBody)
}

func TestCreateRequestNoSearchMatch(t *testing.T) {
	srv := newJellyseerrServer(t)
	srv.searchResults = []jellyseerr.SearchResult{{Id: 100, MediaType: "movie"}}
	h := newTestHandlers(&fakeLibrary{})
	encoded := requestConfig(t, srv.URL)

	resp := doRequest(t, h, "/"+encoded+"/jellyseerr?type=tv&title=unknown")
	require.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), "Unable to resolve")
}

func TestCreateRequestUpstreamFailure(t *testing.T) {
	srv := newJellyseerrServer(t)
	srv.requestStatus = http.StatusInternalServerError
	h := newTestHandlers(&fakeLibrary{})
	encoded := requestConfig(t, srv.URL)

	resp := doRequest(t, h, "/"+encoded+"/jellyseerr?type=movie&tmdbId=603")
	require.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), "500")
}

func TestCreateRequestServiceUnreachable(t *testing.T) {
	srv := newJellyseerrServer(t)
	url := srv.URL
	srv.Close()

	h := newTestHandlers(&fakeLibrary{})
	encoded := requestConfig(t, url)

	resp := doRequest(t, h, "/"+encoded+"/jellyseerr?type=movie&tmdbId=603")
	require.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), "Could not reach")
}

func TestCreateRequestNotConfigured(t *testing.T) {
	h := newTestHandlers(&fakeLibrary{})
	encoded := encodeConfig(t, &jellio.Config{AuthToken: "tok", Libraries: []string{movieLibraryId}})

	resp := doRequest(t, h, "/"+encoded+"/jellyseerr?type=movie&tmdbId=603")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "not configured")
}

func TestCreateRequestFallsBackToServerDefaults(t *testing.T) {
	srv := newJellyseerrServer(t)
	h := newTestHandlers(&fakeLibrary{})
	h.RequestDefaults = RequestDefaults{URL: srv.URL, APIKey: "server-key"}
	encoded := encodeConfig(t, &jellio.Config{AuthToken: "tok", Libraries: []string{movieLibraryId}})

	resp := doRequest(t, h, "/"+encoded+"/jellyseerr?type=movie&tmdbId=603")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "server-key", srv.lastAPIKey)
}

func TestCreateRequestMissingParameters(t *testing.T) {
	srv := newJellyseerrServer(t)
	h := newTestHandlers(&fakeLibrary{})
	encoded := requestConfig(t, srv.URL)

	resp := doRequest(t, h, "/"+encoded+"/jellyseerr?tmdbId=603")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, h, "/"+encoded+"/jellyseerr?type=movie")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "tmdbId or title")
}
