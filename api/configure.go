package api

import (
	"fmt"
	"net/http"

	"github.com/haylibi/jellio-plus/internal/jellio"
	"github.com/haylibi/jellio-plus/internal/logger"
	"github.com/haylibi/jellio-plus/web"
)

// Configure handles requests for addon configuration and redirects to the
// manifest install URL when done.
func (h *Handlers) Configure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotAcceptable)
		return
	}

	if r.Method == http.MethodGet {
		if err := web.ConfigureTemplate.Execute(w, web.ConfigForm{}); err != nil {
			logger.LogError.Printf("Configure: failed to execute template: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	form := web.ConfigForm{
		ServerName:        r.FormValue("serverName"),
		AuthToken:         r.FormValue("authToken"),
		Libraries:         r.FormValue("libraries"),
		JellyseerrEnabled: r.FormValue("jellyseerrEnabled") == "on",
		JellyseerrURL:     r.FormValue("jellyseerrUrl"),
		JellyseerrAPIKey:  r.FormValue("jellyseerrApiKey"),
	}

	if !form.Validate() {
		if err := web.ConfigureTemplate.Execute(w, form); err != nil {
			logger.LogError.Printf("Configure: failed to execute template: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	encoded, err := jellio.EncodeConfig(form.Config())
	if err != nil {
		logger.LogError.Printf("Configure: failed to encode config: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	redirectUrl := fmt.Sprintf("%s/%s/manifest.json", h.AddonBaseURL, encoded)
	logger.LogInfo.Printf("Configure: redirecting to %s", redirectUrl)

	http.Redirect(w, r, redirectUrl, http.StatusSeeOther)
}
