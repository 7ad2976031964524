package stremio

// Manifest is the addon capability descriptor served at /{config}/manifest.json.
type Manifest struct {
	Id            string         `json:"id"`
	Version       string         `json:"version"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Types         []string       `json:"types"`
	Resources     []any          `json:"resources"`
	IdPrefixes    []string       `json:"idPrefixes"`
	ContactEmail  string         `json:"contactEmail,omitempty"`
	BehaviorHints BehaviorHints  `json:"behaviorHints"`
	Catalogs      []Catalog      `json:"catalogs"`
}

// ResourceDescriptor is the object form of a manifest resource entry, used
// when a resource is scoped to specific types or id prefixes.
type ResourceDescriptor struct {
	Name       string   `json:"name"`
	Types      []string `json:"types"`
	IdPrefixes []string `json:"idPrefixes"`
}

type BehaviorHints struct {
	Configurable          bool `json:"configurable"`
	ConfigurationRequired bool `json:"configurationRequired,omitempty"`
}

type Catalog struct {
	Type  string       `json:"type"`
	Id    string       `json:"id"`
	Name  string       `json:"name"`
	Extra []ExtraField `json:"extra,omitempty"`
}

type ExtraField struct {
	Name       string `json:"name"`
	IsRequired bool   `json:"isRequired"`
}

// Meta describes a catalog item. Catalog rows carry the preview fields only;
// the meta detail route additionally fills Runtime, Logo, Background, Released
// and (for series) Videos.
type Meta struct {
	Id          string   `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Poster      string   `json:"poster,omitempty"`
	PosterShape string   `json:"posterShape,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Description string   `json:"description,omitempty"`
	ImdbRating  string   `json:"imdbRating,omitempty"`
	ReleaseInfo string   `json:"releaseInfo,omitempty"`
	Runtime     string   `json:"runtime,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	Background  string   `json:"background,omitempty"`
	Released    string   `json:"released,omitempty"`
	Videos      []Video  `json:"videos,omitempty"`
}

// Video is one episode entry inside a series meta.
type Video struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Available bool   `json:"available"`
	Season    int    `json:"season"`
	Episode   int    `json:"episode"`
	Overview  string `json:"overview,omitempty"`
	Released  string `json:"released,omitempty"`
}

// Stream is one playable rendition offered for an item.
type Stream struct {
	Url         string `json:"url"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type CatalogResponse struct {
	Metas []Meta `json:"metas"`
}

type MetaResponse struct {
	Meta Meta `json:"meta"`
}

type StreamResponse struct {
	Streams []Stream `json:"streams"`
}
