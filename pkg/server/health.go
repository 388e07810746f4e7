package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Arunachalam-140897/DevEngine/pkg/serializer"
)

// readinessCheckTimeout bounds a single dependency check on /ready.
const readinessCheckTimeout = 2 * time.Second

// handleHealth reports liveness. It never consults dependencies.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	serializer.Respond(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

// handleReady reports 503 until the server is serving and while the
// readiness check, if any, fails.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	ready, check := s.ready, s.readinessCheck
	s.mu.RUnlock()

	if !ready {
		serializer.Respond(w, r, http.StatusServiceUnavailable, HealthResponse{
			Status:    "not_ready",
			Timestamp: time.Now().UTC(),
			Reason:    "service is initializing",
		})
		return
	}

	if check != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessCheckTimeout)
		defer cancel()
		if err := check(ctx); err != nil {
			slog.Warn("readiness check failed", "error", err)
			serializer.Respond(w, r, http.StatusServiceUnavailable, HealthResponse{
				Status:    "not_ready",
				Timestamp: time.Now().UTC(),
				Reason:    err.Error(),
			})
			return
		}
	}

	serializer.Respond(w, r, http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
	})
}
