package jellyfin

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// User is the identity a Jellyfin access token resolves to. Lifetime is a
// single request; the adapter never stores it.
type User struct {
	Id   string `json:"Id"`
	Name string `json:"Name"`
}

// Library is one of a user's top-level views. Only movie and TV collection
// folders are visible through the addon.
type Library struct {
	Id             string `json:"Id"`
	Name           string `json:"Name"`
	Type           string `json:"Type"`
	CollectionType string `json:"CollectionType"`
}

const (
	CollectionTypeMovies  = "movies"
	CollectionTypeTVShows = "tvshows"

	ItemTypeMovie   = "Movie"
	ItemTypeSeries  = "Series"
	ItemTypeEpisode = "Episode"
)

// Item is the subset of Jellyfin's item DTO the adapter consumes.
type Item struct {
	Id                string            `json:"Id"`
	Name              string            `json:"Name"`
	Type              string            `json:"Type"`
	Overview          string            `json:"Overview,omitempty"`
	Genres            []string          `json:"Genres,omitempty"`
	CommunityRating   *float64          `json:"CommunityRating,omitempty"`
	PremiereDate      *time.Time        `json:"PremiereDate,omitempty"`
	EndDate           *time.Time        `json:"EndDate,omitempty"`
	Status            string            `json:"Status,omitempty"`
	RunTimeTicks      int64             `json:"RunTimeTicks,omitempty"`
	IndexNumber       *int              `json:"IndexNumber,omitempty"`
	ParentIndexNumber *int              `json:"ParentIndexNumber,omitempty"`
	ProviderIds       map[string]string `json:"ProviderIds,omitempty"`
	ImageTags         map[string]string `json:"ImageTags,omitempty"`
	BackdropImageTags []string          `json:"BackdropImageTags,omitempty"`
	MediaSources      []MediaSource     `json:"MediaSources,omitempty"`
}

// MediaSource is one playable rendition of an item.
type MediaSource struct {
	Id   string `json:"Id"`
	Name string `json:"Name"`
}

// ItemsQuery mirrors the filter surface of Jellyfin's /Items endpoint that the
// adapter needs: recursive type-filtered listing with paging, server-side
// search and provider-id matching.
type ItemsQuery struct {
	UserId           string
	ParentId         string
	IncludeItemTypes []string
	Recursive        bool
	Limit            int
	StartIndex       int
	SearchTerm       string
	// AnyProviderIdEquals matches items carrying the given external id,
	// e.g. provider "Imdb" value "tt0111161".
	ProviderIdName  string
	ProviderIdValue string
	Fields          []string
}

type itemsResult struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}
