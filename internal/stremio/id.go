package stremio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDPrefix is the namespace marker for item ids that have no IMDb id of their
// own. Such items address as "jellio:<internal id>".
const IDPrefix = "jellio"

type IDKind int

const (
	// IDKindItem addresses a library item directly by its internal id.
	IDKindItem IDKind = iota
	// IDKindIMDb addresses items by a bare IMDb id ("tt...").
	IDKindIMDb
	// IDKindIMDbEpisode addresses one episode of a series by IMDb id plus
	// season and episode indices ("tt...:1:2").
	IDKindIMDbEpisode
)

// MediaID is the parsed form of an addon identifier. Exactly one address form
// applies, indicated by Kind.
type MediaID struct {
	Kind IDKind

	ItemID  string
	ImdbID  string
	Season  int
	Episode int
}

// ParseMediaID parses the three addon identifier forms:
//
//	jellio:<internal id>
//	tt<digits>
//	tt<digits>:<season>:<episode>
//
// Internal ids must be valid Jellyfin GUIDs.
func ParseMediaID(raw string) (MediaID, error) {
	if internal, ok := strings.CutPrefix(raw, IDPrefix+":"); ok {
		if _, err := uuid.Parse(internal); err != nil {
			return MediaID{}, fmt.Errorf("ParseMediaID: invalid item id %q: %w", internal, err)
		}
		return MediaID{Kind: IDKindItem, ItemID: internal}, nil
	}

	if !strings.HasPrefix(raw, "tt") {
		return MediaID{}, fmt.Errorf("ParseMediaID: unrecognized id %q", raw)
	}

	split := strings.Split(raw, ":")
	switch len(split) {
	case 1:
		return MediaID{Kind: IDKindIMDb, ImdbID: split[0]}, nil
	case 3:
		season, err := strconv.Atoi(split[1])
		if err != nil {
			return MediaID{}, fmt.Errorf("ParseMediaID: invalid season in %q: %w", raw, err)
		}
		episode, err := strconv.Atoi(split[2])
		if err != nil {
			return MediaID{}, fmt.Errorf("ParseMediaID: invalid episode in %q: %w", raw, err)
		}
		return MediaID{Kind: IDKindIMDbEpisode, ImdbID: split[0], Season: season, Episode: episode}, nil
	default:
		return MediaID{}, fmt.Errorf("ParseMediaID: unrecognized id %q", raw)
	}
}

// FormatItemID returns the namespaced addon identifier for an internal item id.
func FormatItemID(itemID string) string {
	return IDPrefix + ":" + itemID
}
