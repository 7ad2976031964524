// Package jellio holds the embedded configuration every addon route carries in
// its URL. The configuration is client-held: it is re-decoded on each request
// and never stored server-side.
package jellio

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Config is the flat record encoded into the {userConfig} path segment.
// Unknown fields are ignored so older blobs keep working.
type Config struct {
	AuthToken  string   `json:"authToken"`
	Libraries  []string `json:"libraries"`
	ServerName string   `json:"serverName"`

	JellyseerrEnabled bool   `json:"jellyseerrEnabled"`
	JellyseerrURL     string `json:"jellyseerrUrl"`
	JellyseerrAPIKey  string `json:"jellyseerrApiKey"`
}

// EncodeConfig encodes a Config to its URL-safe base64 JSON representation.
func EncodeConfig(c *Config) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal user config struct: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeConfig decodes a base64url JSON path segment into a Config. Both
// padded and unpadded encodings are accepted; configure UIs in the wild emit
// either.
func DecodeConfig(c string) (*Config, error) {
	data, err := base64.RawURLEncoding.DecodeString(c)
	if err != nil {
		data, err = base64.URLEncoding.DecodeString(c)
		if err != nil {
			return nil, fmt.Errorf("decode user config: %w", err)
		}
	}

	var config = &Config{}
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("unmarshal user config struct: %w", err)
	}

	if config.Libraries == nil {
		config.Libraries = []string{}
	}

	return config, nil
}
