package api

import (
	"net/http"

	"github.com/haylibi/jellio-plus/api/middleware"
	"github.com/haylibi/jellio-plus/internal/jellio"
	"github.com/haylibi/jellio-plus/internal/jellyfin"
	"github.com/haylibi/jellio-plus/internal/logger"
	"github.com/haylibi/jellio-plus/internal/stremio"

	"github.com/gorilla/mux"
)

// resolveStreamUser resolves identity without failing the request. Stream
// routes answer an unknown or unresolvable user with an empty stream list;
// the client treats empty as "no stream available" and may fall back to the
// request action.
func (h *Handlers) resolveStreamUser(r *http.Request) *jellyfin.User {
	userConfig := middleware.ConfigFromContext(r.Context())
	if userConfig == nil || userConfig.AuthToken == "" {
		return nil
	}

	user, err := h.Library.ResolveUser(r.Context(), userConfig.AuthToken)
	if err != nil {
		logger.LogWarn.Printf("resolveStreamUser: failed to resolve user: %s", err)
		return nil
	}

	return user
}

func writeStreams(w http.ResponseWriter, streams []stremio.Stream) {
	if streams == nil {
		streams = []stremio.Stream{}
	}
	writeJSON(w, stremio.StreamResponse{Streams: streams})
}

// Stream handles stream resolution for all three identifier forms. The id
// decides the lookup strategy; the path type narrows which forms are valid.
func (h *Handlers) Stream(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userConfig := middleware.ConfigFromContext(r.Context())

	user := h.resolveStreamUser(r)
	if user == nil {
		writeStreams(w, nil)
		return
	}

	mediaId, err := stremio.ParseMediaID(vars["mediaId"])
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	stremioType := vars["stremioType"]
	switch mediaId.Kind {
	case stremio.IDKindItem:
		h.streamByItem(w, r, userConfig, user, mediaId.ItemID)
	case stremio.IDKindIMDb:
		if stremioType != "movie" {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		h.streamByImdbMovie(w, r, userConfig, user, mediaId.ImdbID)
	case stremio.IDKindIMDbEpisode:
		if stremioType != "series" {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		h.streamByImdbEpisode(w, r, userConfig, user, mediaId)
	default:
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

// streamByItem resolves streams for a namespaced internal id. This path
// bypasses identifier translation: the caller already holds the internal id.
func (h *Handlers) streamByItem(w http.ResponseWriter, r *http.Request, userConfig *jellio.Config, user *jellyfin.User, itemId string) {
	item, err := h.Library.ItemById(r.Context(), userConfig.AuthToken, user.Id, itemId)
	if err != nil {
		logger.LogError.Printf("streamByItem: failed to fetch item %s: %s", itemId, err)
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	writeStreams(w, h.streamsFor(userConfig, []jellyfin.Item{*item}))
}

// streamByImdbMovie resolves streams for every movie carrying the given IMDb
// id. Zero, one or many matches are all valid.
func (h *Handlers) streamByImdbMovie(w http.ResponseWriter, r *http.Request, userConfig *jellio.Config, user *jellyfin.User, imdbId string) {
	items, err := h.Library.Items(r.Context(), userConfig.AuthToken, jellyfin.ItemsQuery{
		UserId:           user.Id,
		IncludeItemTypes: []string{jellyfin.ItemTypeMovie},
		Recursive:        true,
		ProviderIdName:   "Imdb",
		ProviderIdValue:  imdbId,
		Fields:           []string{"MediaSources"},
	})
	if err != nil {
		logger.LogError.Printf("streamByImdbMovie: failed to query items: %s", err)
		writeStreams(w, nil)
		return
	}

	writeStreams(w, h.streamsFor(userConfig, items))
}

// streamByImdbEpisode resolves streams for one episode of every series
// carrying the given IMDb id.
func (h *Handlers) streamByImdbEpisode(w http.ResponseWriter, r *http.Request, userConfig *jellio.Config, user *jellyfin.User, mediaId stremio.MediaID) {
	seriesItems, err := h.Library.Items(r.Context(), userConfig.AuthToken, jellyfin.ItemsQuery{
		UserId:           user.Id,
		IncludeItemTypes: []string{jellyfin.ItemTypeSeries},
		Recursive:        true,
		ProviderIdName:   "Imdb",
		ProviderIdValue:  mediaId.ImdbID,
	})
	if err != nil {
		logger.LogError.Printf("streamByImdbEpisode: failed to query series: %s", err)
		writeStreams(w, nil)
		return
	}

	if len(seriesItems) == 0 {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	matched := make([]jellyfin.Item, 0)
	for _, series := range seriesItems {
		episodes, err := h.Library.Episodes(r.Context(), userConfig.AuthToken, user.Id, series.Id)
		if err != nil {
			logger.LogError.Printf("streamByImdbEpisode: failed to enumerate episodes of %s: %s", series.Id, err)
			continue
		}
		for _, episode := range episodes {
			if intOrZero(episode.ParentIndexNumber) == mediaId.Season && intOrZero(episode.IndexNumber) == mediaId.Episode {
				matched = append(matched, episode)
			}
		}
	}

	writeStreams(w, h.streamsFor(userConfig, matched))
}
