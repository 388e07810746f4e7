package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Arunachalam-140897/DevEngine/pkg/serializer"
)

// systemRoutes are served outside the API middleware chain.
var systemRoutes = []string{"GET /health", "GET /ready", "GET /metrics"}

// RootResponse is the body of GET /.
type RootResponse struct {
	Name      string   `json:"name" yaml:"name"`
	Version   string   `json:"version" yaml:"version"`
	Ready     bool     `json:"ready" yaml:"ready"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
	Routes    []string `json:"routes" yaml:"routes"`
}

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// exact root only; other unknown paths get the mux 404 or 405
	mux.HandleFunc("GET /{$}", s.handleRoot)

	mux.HandleFunc(systemRoutes[0], s.handleHealth)
	mux.HandleFunc(systemRoutes[1], s.handleReady)
	mux.Handle(systemRoutes[2], promhttp.Handler())

	for pattern, h := range s.handlers {
		mux.HandleFunc(pattern, s.withMiddleware(pattern, h))
	}

	return s.withRecovery(mux)
}

// handleRoot describes the service and lists its routes.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling root route",
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()

	serializer.Respond(w, r, http.StatusOK, RootResponse{
		Name:      s.name,
		Version:   s.version,
		Ready:     ready,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    append(s.Routes(), systemRoutes...),
	})
}
