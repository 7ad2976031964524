package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/haylibi/jellio-plus/api/middleware"
	"github.com/haylibi/jellio-plus/internal/jellyseerr"
	"github.com/haylibi/jellio-plus/internal/logger"
)

// requestSettings picks the Jellyseerr endpoint for a request: the embedded
// configuration when the integration is enabled there, otherwise the
// server-level defaults.
func (h *Handlers) requestSettings(r *http.Request) (baseURL, apiKey string, ok bool) {
	userConfig := middleware.ConfigFromContext(r.Context())

	if userConfig.JellyseerrEnabled && userConfig.JellyseerrURL != "" {
		return userConfig.JellyseerrURL, userConfig.JellyseerrAPIKey, true
	}
	if h.RequestDefaults.URL != "" {
		return h.RequestDefaults.URL, h.RequestDefaults.APIKey, true
	}

	return "", "", false
}

// CreateRequest forwards an acquisition request to Jellyseerr, resolving the
// TMDB id through a title search when it was not supplied directly. All
// upstream failures classify as 502; the client never sees internals.
func (h *Handlers) CreateRequest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mediaType := query.Get("type")
	title := query.Get("title")

	logger.LogInfo.Printf("CreateRequest: type=%s, tmdbId=%s, imdbId=%s, title=%s",
		mediaType, query.Get("tmdbId"), query.Get("imdbId"), title)

	baseURL, apiKey, ok := h.requestSettings(r)
	if !ok {
		http.Error(w, "Jellyseerr is not configured.", http.StatusBadRequest)
		return
	}

	if mediaType == "" {
		http.Error(w, "The type parameter is required.", http.StatusBadRequest)
		return
	}

	client := jellyseerr.NewClient(baseURL, apiKey)

	tmdbId, err := strconv.Atoi(query.Get("tmdbId"))
	if err != nil {
		if strings.TrimSpace(title) == "" {
			http.Error(w, "Either tmdbId or title parameter is required.", http.StatusBadRequest)
			return
		}

		results, err := client.Search(r.Context(), title)
		if err != nil {
			logger.LogError.Printf("CreateRequest: search failed: %s", err)
		}

		id, found := jellyseerr.MatchResult(results, mediaType)
		if !found {
			http.Error(w, "Unable to resolve TMDB id for request.", http.StatusBadGateway)
			return
		}
		tmdbId = id
	}

	isTV := strings.EqualFold(mediaType, jellyseerr.MediaTypeTV)

	var seasons []int
	if isTV {
		// Whole seasons only. A supplied episode number is deliberately
		// ignored; partial-season requests are not offered.
		if season, err := strconv.Atoi(query.Get("season")); err == nil {
			seasons = []int{season}
		}
	}

	request := jellyseerr.MediaRequest{
		MediaType: jellyseerr.MediaTypeMovie,
		MediaId:   tmdbId,
		Seasons:   seasons,
	}
	if isTV {
		request.MediaType = jellyseerr.MediaTypeTV
	}

	status, err := client.CreateRequest(r.Context(), request)
	if err != nil {
		logger.LogError.Printf("CreateRequest: failed to reach Jellyseerr: %s", err)
		http.Error(w, "Could not reach the request service.", http.StatusBadGateway)
		return
	}

	if status > 299 {
		logger.LogError.Printf("CreateRequest: Jellyseerr answered %d", status)
		http.Error(w, fmt.Sprintf("Jellyseerr request failed with status %d.", status), http.StatusBadGateway)
		return
	}

	// Stremio can only surface a playable or unplayable URL, so the
	// acknowledgement is plain text meant for human eyes.
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Content request sent to Jellyseerr successfully!")
}
