// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"amazon_reviews/internal/app"
)

type Handlers struct{ Scraper *app.ScrapeService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/scrape", h.scrape)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// scrape runs the full pipeline for ?url= and returns the assembled
// aggregate. Failures are opaque to the caller; the cause lands in the
// operational log only.
func (h *Handlers) scrape(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		writeProblem(w, http.StatusBadRequest, "Missing URL", "URL to scrape is not provided")
		return
	}

	pr, err := h.Scraper.Scrape(r.Context(), pageURL)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Scrape Failed", "Failed to scrape data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(pr); err != nil {
		log.Error().Err(err).Msg("failed to write scrape body")
	}
}
