package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/haylibi/jellio-plus/api/middleware"
	"github.com/haylibi/jellio-plus/internal/config"
	"github.com/haylibi/jellio-plus/internal/jellyfin"
	"github.com/haylibi/jellio-plus/internal/logger"
	"github.com/haylibi/jellio-plus/internal/stremio"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// libraryService is the slice of the Jellyfin client the handlers consume.
type libraryService interface {
	ResolveUser(ctx context.Context, token string) (*jellyfin.User, error)
	UserViews(ctx context.Context, token, userId string) ([]jellyfin.Library, error)
	Items(ctx context.Context, token string, query jellyfin.ItemsQuery) ([]jellyfin.Item, error)
	ItemById(ctx context.Context, token, userId, itemId string) (*jellyfin.Item, error)
	Episodes(ctx context.Context, token, userId, seriesId string) ([]jellyfin.Item, error)
}

var _ libraryService = (*jellyfin.Client)(nil)

// RequestDefaults are the server-level Jellyseerr settings used when the
// embedded configuration carries none. They are injected here and nowhere
// else; only the request route consumes them.
type RequestDefaults struct {
	URL    string
	APIKey string
}

type Handlers struct {
	Library libraryService

	// MediaBaseURL is the Jellyfin address baked into poster and stream URLs.
	MediaBaseURL string
	// AddonBaseURL is the externally reachable address of this adapter.
	AddonBaseURL string

	RequestDefaults RequestDefaults
}

func NewHandlers(library *jellyfin.Client) *Handlers {
	return &Handlers{
		Library:      library,
		MediaBaseURL: config.JellyfinPublicURL,
		AddonBaseURL: config.AddonBaseURL,
		RequestDefaults: RequestDefaults{
			URL:    config.JellyseerrURL,
			APIKey: config.JellyseerrAPIKey,
		},
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	jsonResponse, err := json.Marshal(payload)
	if err != nil {
		logger.LogError.Printf("writeJSON: failed to marshal json: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(jsonResponse)
}

// Home handles requests to the root and provides a dummy response.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"name": "Jellio", "path": "/"})
}

// userLibraries returns the user's views narrowed to movie and TV collection
// folders; other view kinds are invisible to the addon. Library lookup
// failures degrade to an empty set rather than surfacing upstream error
// shapes.
func (h *Handlers) userLibraries(ctx context.Context, token string, user *jellyfin.User) []jellyfin.Library {
	views, err := h.Library.UserViews(ctx, token, user.Id)
	if err != nil {
		logger.LogError.Printf("userLibraries: failed to list views for user %s: %s", user.Id, err)
		return nil
	}

	libraries := make([]jellyfin.Library, 0, len(views))
	for _, view := range views {
		if view.CollectionType == jellyfin.CollectionTypeMovies || view.CollectionType == jellyfin.CollectionTypeTVShows {
			libraries = append(libraries, view)
		}
	}

	return libraries
}

func stremioTypeForCollection(collectionType string) string {
	switch collectionType {
	case jellyfin.CollectionTypeMovies:
		return "movie"
	case jellyfin.CollectionTypeTVShows:
		return "series"
	default:
		return ""
	}
}

func validStremioType(stremioType string) bool {
	return stremioType == "movie" || stremioType == "series"
}

// Manifest handles requests for the addon capability descriptor.
func (h *Handlers) Manifest(w http.ResponseWriter, r *http.Request) {
	userConfig := middleware.ConfigFromContext(r.Context())
	user := middleware.UserFromContext(r.Context())

	libraries := h.userLibraries(r.Context(), userConfig.AuthToken, user)

	authorized := make([]jellyfin.Library, 0, len(libraries))
	for _, library := range libraries {
		for _, id := range userConfig.Libraries {
			if library.Id == id {
				authorized = append(authorized, library)
				break
			}
		}
	}

	// The configured set must survive intact. A missing library means the
	// client holds a stale or overreaching configuration, which invalidates
	// the whole manifest rather than producing a partial one.
	if len(authorized) != len(userConfig.Libraries) {
		logger.LogError.Printf("Manifest: configured libraries (%d) do not match visible libraries (%d) for user %s",
			len(userConfig.Libraries), len(authorized), user.Id)
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	serverName := userConfig.ServerName
	if serverName == "" {
		serverName = "Jellyfin"
	}

	catalogs := make([]stremio.Catalog, 0, len(authorized))
	catalogNames := make([]string, 0, len(authorized))
	for _, library := range authorized {
		catalogs = append(catalogs, stremio.Catalog{
			Type: stremioTypeForCollection(library.CollectionType),
			Id:   library.Id,
			Name: fmt.Sprintf("%s | %s", library.Name, serverName),
			Extra: []stremio.ExtraField{
				{Name: "skip", IsRequired: false},
				{Name: "search", IsRequired: false},
			},
		})
		catalogNames = append(catalogNames, library.Name)
	}

	manifest := stremio.Manifest{
		Id:          "com.stremio.jellio",
		Version:     "0.0.1",
		Name:        "Jellio",
		Description: fmt.Sprintf("Play movies and series from %s: %s", serverName, strings.Join(catalogNames, ", ")),
		Types:       []string{"movie", "series"},
		Resources: []any{
			"catalog",
			"stream",
			stremio.ResourceDescriptor{
				Name:       "meta",
				Types:      []string{"movie", "series"},
				IdPrefixes: []string{stremio.IDPrefix},
			},
		},
		IdPrefixes:    []string{"tt", stremio.IDPrefix},
		ContactEmail:  "support@jellio.stream",
		BehaviorHints: stremio.BehaviorHints{Configurable: true},
		Catalogs:      catalogs,
	}

	writeJSON(w, manifest)
}

// parseExtra parses the optional catalog extra segment, an &-joined,
// =-delimited key/value list.
func parseExtra(extra string) map[string]string {
	extras := map[string]string{}
	for _, pair := range strings.Split(extra, "&") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 {
			extras[parts[0]] = parts[1]
		}
	}
	return extras
}

// Catalog handles paginated, searchable catalog listings.
func (h *Handlers) Catalog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userConfig := middleware.ConfigFromContext(r.Context())
	user := middleware.UserFromContext(r.Context())

	stremioType := vars["stremioType"]
	if !validStremioType(stremioType) {
		http.Error(w, "Unsupported type", http.StatusBadRequest)
		return
	}

	catalogId := vars["catalogId"]
	if _, err := uuid.Parse(catalogId); err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	var catalogLibrary *jellyfin.Library
	libraries := h.userLibraries(r.Context(), userConfig.AuthToken, user)
	for i := range libraries {
		if libraries[i].Id == catalogId {
			catalogLibrary = &libraries[i]
			break
		}
	}
	if catalogLibrary == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	extras := parseExtra(vars["extra"])
	startIndex := 0
	if skip, err := strconv.Atoi(extras["skip"]); err == nil {
		startIndex = skip
	}

	items, err := h.Library.Items(r.Context(), userConfig.AuthToken, jellyfin.ItemsQuery{
		UserId:           user.Id,
		ParentId:         catalogLibrary.Id,
		IncludeItemTypes: []string{jellyfin.ItemTypeMovie, jellyfin.ItemTypeSeries},
		Recursive:        true, // need this for search to work
		Limit:            config.CatalogPageSize,
		StartIndex:       startIndex,
		SearchTerm:       extras["search"],
		Fields:           []string{"ProviderIds", "Overview", "Genres"},
	})
	if err != nil {
		logger.LogError.Printf("Catalog: failed to query items in %s: %s", catalogLibrary.Id, err)
		status := http.StatusInternalServerError
		if isLookupFailure(err) {
			status = http.StatusNotFound
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	metas := make([]stremio.Meta, 0, len(items))
	for i := range items {
		metas = append(metas, h.mapItemToMeta(&items[i], stremioType, false))
	}

	writeJSON(w, stremio.CatalogResponse{Metas: metas})
}

// Meta handles full metadata expansion for a single item, including episode
// enumeration for series.
func (h *Handlers) Meta(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userConfig := middleware.ConfigFromContext(r.Context())
	user := middleware.UserFromContext(r.Context())

	stremioType := vars["stremioType"]
	if !validStremioType(stremioType) {
		http.Error(w, "Unsupported type", http.StatusBadRequest)
		return
	}

	mediaId := vars["mediaId"]
	if _, err := uuid.Parse(mediaId); err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	item, err := h.Library.ItemById(r.Context(), userConfig.AuthToken, user.Id, mediaId)
	if err != nil {
		logger.LogError.Printf("Meta: failed to fetch item %s: %s", mediaId, err)
		status := http.StatusInternalServerError
		if isLookupFailure(err) {
			status = http.StatusNotFound
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	meta := h.mapItemToMeta(item, stremioType, true)

	if stremioType == "series" {
		if item.Type != jellyfin.ItemTypeSeries {
			http.Error(w, "Item is not a series", http.StatusBadRequest)
			return
		}

		episodes, err := h.Library.Episodes(r.Context(), userConfig.AuthToken, user.Id, item.Id)
		if err != nil {
			logger.LogError.Printf("Meta: failed to enumerate episodes of %s: %s", item.Id, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		videos := make([]stremio.Video, 0, len(episodes))
		for i := range episodes {
			videos = append(videos, h.mapEpisodeToVideo(&episodes[i]))
		}
		meta.Videos = videos
	}

	writeJSON(w, stremio.MetaResponse{Meta: meta})
}

// isLookupFailure reports whether a library error means the target is simply
// not visible or not there, as opposed to an internal fault.
func isLookupFailure(err error) bool {
	return errors.Is(err, jellyfin.ErrNotFound) || errors.Is(err, jellyfin.ErrUnauthorized)
}
