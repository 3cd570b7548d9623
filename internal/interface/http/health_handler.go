package httpapi

import (
	"context"
	"net/http"
	"time"
)

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "pong",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "using_memory"
	if s.db != nil {
		dbStatus = "ok"
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			dbStatus = "error: " + err.Error()
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"health":  "ok",
		"db":      dbStatus,
		"time":    time.Now().Format(time.RFC3339),
	})
}
