package middleware

import (
	"context"
	"net/http"

	"github.com/haylibi/jellio-plus/internal/jellio"
	"github.com/haylibi/jellio-plus/internal/jellyfin"
	"github.com/haylibi/jellio-plus/internal/logger"

	"github.com/gorilla/mux"
)

type contextKey string

const (
	ConfigContextKey contextKey = "jellio-config"
	UserContextKey   contextKey = "jellio-user"
)

// TokenResolver maps an access token to the library user owning it.
type TokenResolver interface {
	ResolveUser(ctx context.Context, token string) (*jellyfin.User, error)
}

// WithConfig decodes the embedded configuration path segment and attaches it
// to the request context. Malformed blobs are rejected before any other
// component runs.
func WithConfig(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		userConfigEnc, ok := vars["userConfig"]
		if !ok {
			http.Error(w, "No user config passed", http.StatusBadRequest)
			return
		}

		userConfig, err := jellio.DecodeConfig(userConfigEnc)
		if err != nil {
			logger.LogError.Printf("WithConfig: cannot decode user config: %s", err)
			http.Error(w, "Cannot decode user config", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), ConfigContextKey, userConfig)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithUser resolves the configuration's auth token to a user identity and
// attaches it to the request context. This is the only mechanism by which
// identity reaches the handlers. Routes that must degrade softly on auth
// failure (streams) skip this middleware and resolve in-handler instead.
func WithUser(auth TokenResolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userConfig := ConfigFromContext(r.Context())
			if userConfig == nil || userConfig.AuthToken == "" {
				http.Error(w, "user config was invalid", http.StatusUnauthorized)
				return
			}

			user, err := auth.ResolveUser(r.Context(), userConfig.AuthToken)
			if err != nil {
				logger.LogError.Printf("WithUser: failed to resolve user: %s", err)
				http.Error(w, "Cannot resolve user", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ConfigFromContext returns the embedded configuration attached by WithConfig,
// or nil.
func ConfigFromContext(ctx context.Context) *jellio.Config {
	config, _ := ctx.Value(ConfigContextKey).(*jellio.Config)
	return config
}

// UserFromContext returns the identity attached by WithUser, or nil.
func UserFromContext(ctx context.Context) *jellyfin.User {
	user, _ := ctx.Value(UserContextKey).(*jellyfin.User)
	return user
}
