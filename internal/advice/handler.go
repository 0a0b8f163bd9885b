package advice

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewHandler serves POST /api/maestro-advice on top of p. Failures answer
// with Fallback so clients always receive something to show.
func NewHandler(p Provider) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/api/maestro-advice", func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); nil != err || req.Mode == "" {
			writeJSON(w, http.StatusBadRequest, Fallback)
			return
		}
		adv, err := p.Advise(r.Context(), req.Mode, req.Context)
		if nil != err {
			log.Println("advice request failed:", err)
			writeJSON(w, http.StatusInternalServerError, Fallback)
			return
		}
		writeJSON(w, http.StatusOK, adv)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); nil != err {
		log.Println("unable to write response:", err)
	}
}
