package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/haylibi/jellio-plus/api/middleware"
	"github.com/haylibi/jellio-plus/internal/config"
	"github.com/haylibi/jellio-plus/internal/logger"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// BuildRouter builds a new router with handler functions to handle all
// necessary routes and also appends middleware.
func BuildRouter(h *Handlers) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/configure", h.Configure).Methods(http.MethodGet, http.MethodPost)

	// Every addon route carries the embedded configuration as its first path
	// segment; it is re-decoded on each request.
	configured := r.PathPrefix("/{userConfig}").Subrouter()
	configured.Use(middleware.WithConfig)

	// The stream route resolves identity softly: an unknown user answers with
	// an empty stream list, not an error.
	configured.HandleFunc("/stream/{stremioType}/{mediaId}.json", h.Stream).Methods(http.MethodGet)

	authed := configured.NewRoute().Subrouter()
	authed.Use(middleware.WithUser(h.Library))
	authed.HandleFunc("/manifest.json", h.Manifest).Methods(http.MethodGet)
	authed.HandleFunc("/catalog/{stremioType}/{catalogId}.json", h.Catalog).Methods(http.MethodGet)
	authed.HandleFunc("/catalog/{stremioType}/{catalogId}/{extra}.json", h.Catalog).Methods(http.MethodGet)
	authed.HandleFunc("/meta/{stremioType}/jellio:{mediaId}.json", h.Meta).Methods(http.MethodGet)
	authed.HandleFunc("/jellyseerr", h.CreateRequest).Methods(http.MethodGet)

	chain := middleware.WithLogging(middleware.WithRateLimit(r))
	timeoutHandler := http.TimeoutHandler(chain, 30*time.Second, "")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/configure" {
			// The configure page writes progressively and must not buffer
			// behind the timeout handler.
			chain.ServeHTTP(w, r)
		} else {
			timeoutHandler.ServeHTTP(w, r)
		}
	})
}

// Serve calls serve on a handler and listens to incoming requests.
//
// CORS is also configured to work with Stremio.
func Serve(r http.Handler) error {
	// CORS configuration
	headersOk := handlers.AllowedHeaders([]string{
		"Content-Type",
		"X-Requested-With",
		"Accept",
		"Accept-Language",
		"Accept-Encoding",
		"Content-Language",
		"Origin",
	})
	originsOk := handlers.AllowedOrigins([]string{"*"})
	methodsOk := handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost})

	// Listen
	logger.LogInfo.Printf("Serve: listening on port %s...", config.Port)
	err := http.ListenAndServe(fmt.Sprintf("0.0.0.0:%s", config.Port), handlers.CORS(originsOk, headersOk, methodsOk)(r))
	if err != nil {
		return fmt.Errorf("Serve: %w", err)
	}

	return nil
}
