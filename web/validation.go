package web

import (
	"strings"

	"github.com/haylibi/jellio-plus/internal/jellio"
)

// ConfigForm is the configure page's form model. Libraries is the raw input
// value, split on commas and whitespace.
type ConfigForm struct {
	ServerName        string
	AuthToken         string
	Libraries         string
	JellyseerrEnabled bool
	JellyseerrURL     string
	JellyseerrAPIKey  string
	Errors            map[string]string
}

func (f *ConfigForm) Validate() bool {
	f.Errors = make(map[string]string)

	if strings.TrimSpace(f.AuthToken) == "" {
		f.Errors["AuthToken"] = "You must enter a Jellyfin access token"
	}

	if len(f.LibraryIds()) == 0 {
		f.Errors["Libraries"] = "You must enter at least one library id"
	}

	if f.JellyseerrEnabled && strings.TrimSpace(f.JellyseerrURL) == "" {
		f.Errors["JellyseerrURL"] = "You must enter the Jellyseerr address"
	}

	return len(f.Errors) == 0
}

func (f *ConfigForm) LibraryIds() []string {
	fields := strings.FieldsFunc(f.Libraries, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	ids := make([]string, 0, len(fields))
	for _, field := range fields {
		if field != "" {
			ids = append(ids, field)
		}
	}

	return ids
}

// Config builds the embedded configuration a validated form encodes to.
func (f *ConfigForm) Config() *jellio.Config {
	serverName := strings.TrimSpace(f.ServerName)
	if serverName == "" {
		serverName = "Jellyfin"
	}

	return &jellio.Config{
		AuthToken:         strings.TrimSpace(f.AuthToken),
		Libraries:         f.LibraryIds(),
		ServerName:        serverName,
		JellyseerrEnabled: f.JellyseerrEnabled,
		JellyseerrURL:     strings.TrimRight(strings.TrimSpace(f.JellyseerrURL), "/"),
		JellyseerrAPIKey:  strings.TrimSpace(f.JellyseerrAPIKey),
	}
}
