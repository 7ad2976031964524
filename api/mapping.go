package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/haylibi/jellio-plus/internal/jellio"
	"github.com/haylibi/jellio-plus/internal/jellyfin"
	"github.com/haylibi/jellio-plus/internal/stremio"
)

// ticksPerMinute converts Jellyfin's 100ns runtime ticks to minutes.
const ticksPerMinute = 600000000

// addonItemId is the forward identifier translation: items known to IMDb
// address by their IMDb id, everything else by the namespaced internal id.
func addonItemId(item *jellyfin.Item) string {
	if imdbId := item.ProviderIds["Imdb"]; imdbId != "" {
		return imdbId
	}
	return stremio.FormatItemID(item.Id)
}

// releaseInfo derives the display year range. Movies show the premiere year.
// Series show "<start>-", with the end year appended only once the series has
// actually ended in a different year.
func releaseInfo(item *jellyfin.Item, stremioType string) string {
	if item.PremiereDate == nil {
		return ""
	}

	premiereYear := strconv.Itoa(item.PremiereDate.Year())
	if stremioType != "series" {
		return premiereYear
	}

	info := premiereYear + "-"
	if item.Status != "Continuing" && item.EndDate != nil {
		if endYear := strconv.Itoa(item.EndDate.Year()); endYear != premiereYear {
			info += endYear
		}
	}

	return info
}

func formatRating(rating *float64) string {
	if rating == nil {
		return ""
	}
	return strconv.FormatFloat(*rating, 'f', 1, 64)
}

func formatRuntime(ticks int64) string {
	if ticks == 0 {
		return ""
	}
	return fmt.Sprintf("%d min", ticks/ticksPerMinute)
}

func formatReleased(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.UTC().Format(time.RFC3339)
}

func intOrZero(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func (h *Handlers) primaryImageURL(itemId string) string {
	return fmt.Sprintf("%s/Items/%s/Images/Primary", h.MediaBaseURL, itemId)
}

func (h *Handlers) mapItemToMeta(item *jellyfin.Item, stremioType string, includeDetails bool) stremio.Meta {
	meta := stremio.Meta{
		Id:          addonItemId(item),
		Type:        stremioType,
		Name:        item.Name,
		Poster:      h.primaryImageURL(item.Id),
		PosterShape: "poster",
		Genres:      item.Genres,
		Description: item.Overview,
		ImdbRating:  formatRating(item.CommunityRating),
		ReleaseInfo: releaseInfo(item, stremioType),
	}

	if includeDetails {
		meta.Runtime = formatRuntime(item.RunTimeTicks)
		if _, ok := item.ImageTags["Logo"]; ok {
			meta.Logo = fmt.Sprintf("%s/Items/%s/Images/Logo", h.MediaBaseURL, item.Id)
		}
		if len(item.BackdropImageTags) > 0 {
			meta.Background = fmt.Sprintf("%s/Items/%s/Images/Backdrop/0", h.MediaBaseURL, item.Id)
		}
		meta.Released = formatReleased(item.PremiereDate)
	}

	return meta
}

func (h *Handlers) mapEpisodeToVideo(episode *jellyfin.Item) stremio.Video {
	return stremio.Video{
		Id:        stremio.FormatItemID(episode.Id),
		Title:     episode.Name,
		Thumbnail: h.primaryImageURL(episode.Id),
		Available: true,
		Season:    intOrZero(episode.ParentIndexNumber),
		Episode:   intOrZero(episode.IndexNumber),
		Overview:  episode.Overview,
		Released:  formatReleased(episode.PremiereDate),
	}
}

// streamsFor synthesizes the direct-play streams for a resolved item set.
// Items sharing an external id all contribute their sources; duplicate
// imports fan out to a unioned stream list on purpose.
func (h *Handlers) streamsFor(userConfig *jellio.Config, items []jellyfin.Item) []stremio.Stream {
	streams := make([]stremio.Stream, 0)
	for _, item := range items {
		for _, source := range item.MediaSources {
			streams = append(streams, stremio.Stream{
				Url: fmt.Sprintf("%s/videos/%s/stream?mediaSourceId=%s&static=true&api_key=%s",
					h.MediaBaseURL, item.Id, source.Id, userConfig.AuthToken),
				Name:        "Jellio",
				Description: source.Name,
			})
		}
	}
	return streams
}
