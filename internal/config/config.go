package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

var (
	Port string = ""

	// JellyfinURL is the address the adapter uses to reach the Jellyfin API.
	JellyfinURL string = ""

	// JellyfinPublicURL is the address baked into poster and stream URLs handed
	// to Stremio clients. Defaults to JellyfinURL.
	JellyfinPublicURL string = ""

	// AddonBaseURL is where the configure page redirects installed manifests to.
	AddonBaseURL string = ""

	// Server-level Jellyseerr defaults, used when the embedded configuration
	// carries no integration settings of its own.
	JellyseerrURL    string = ""
	JellyseerrAPIKey string = ""

	CatalogPageSize = 100

	JellyfinClientRetryAttempts uint = 3
	JellyfinClientRetryDelay         = 250 * time.Millisecond

	JellyseerrTimeout = 10 * time.Second

	RateLimitingRate  float64 = 20
	RateLimitingBurst int     = 40
)

func InitConfig() {
	Port = os.Getenv("PORT")
	if Port == "" {
		log.Fatalf("The environment variable PORT must be supplied\n")
	}

	JellyfinURL = strings.TrimRight(os.Getenv("JELLYFIN_URL"), "/")
	if JellyfinURL == "" {
		log.Fatalf("The environment variable JELLYFIN_URL must be supplied\n")
	}

	JellyfinPublicURL = strings.TrimRight(os.Getenv("JELLYFIN_PUBLIC_URL"), "/")
	if JellyfinPublicURL == "" {
		JellyfinPublicURL = JellyfinURL
	}

	AddonBaseURL = strings.TrimRight(os.Getenv("ADDON_BASE_URL"), "/")
	if AddonBaseURL == "" {
		AddonBaseURL = fmt.Sprintf("http://127.0.0.1:%s", Port)
	}

	JellyseerrURL = strings.TrimRight(os.Getenv("JELLYSEERR_URL"), "/")
	JellyseerrAPIKey = os.Getenv("JELLYSEERR_API_KEY")
}
