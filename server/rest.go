package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"tracked": s.seen.Len(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// seenHandler returns the summary of tracked posts, same as xNotTwice.show() in the page
func (s *Server) seenHandler(w http.ResponseWriter, r *http.Request) {
	sum := s.seen.Summarize()
	resp := struct {
		Total     int      `json:"total"`
		Bytes     int      `json:"storage_bytes"`
		KiB       float64  `json:"storage_kb"`
		Recent    []string `json:"recent"`
		Formatted string   `json:"formatted"`
	}{
		Total:     sum.Total,
		Bytes:     sum.StorageBytes,
		KiB:       sum.KiB(),
		Recent:    sum.Recent,
		Formatted: sum.String(),
	}
	if resp.Recent == nil {
		resp.Recent = []string{}
	}
	renderJSON(w, r, http.StatusOK, resp)
}

// clearSeenHandler forgets all tracked posts, requires confirm=yes
func (s *Server) clearSeenHandler(w http.ResponseWriter, r *http.Request) {
	confirm := queryConfirmer(r.URL.Query().Get("confirm") == "yes")
	cleared, err := s.seen.Clear(r.Context(), confirm)
	if err != nil {
		log.Printf("[WARN] failed to clear tracked posts: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if !cleared {
		renderError(w, r, errors.New("clear not confirmed, pass confirm=yes"), http.StatusConflict)
		return
	}
	log.Printf("[INFO] cleared all tracked posts via api")
	renderJSON(w, r, http.StatusOK, map[string]interface{}{"cleared": true, "total": s.seen.Len()})
}

// queryConfirmer answers the clear prompt with the request's confirm parameter
type queryConfirmer bool

func (q queryConfirmer) Confirm(context.Context, string) (bool, error) { return bool(q), nil }

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
