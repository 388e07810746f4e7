package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Arunachalam-140897/DevEngine/pkg/generator"
	"github.com/Arunachalam-140897/DevEngine/pkg/logging"
	"github.com/Arunachalam-140897/DevEngine/pkg/server"
	"github.com/Arunachalam-140897/DevEngine/pkg/template"
)

const (
	name           = "devengine-api"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/Arunachalam-140897/DevEngine/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until SIGINT or SIGTERM.
// Configuration comes from the environment (PORT, LOG_LEVEL, RATE_LIMIT,
// REDIS_ADDR).
func Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := server.DefaultConfig()
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	return Run(ctx, name, version, cfg)
}

// Run serves the API with cfg until ctx is canceled. The template store is
// Redis when cfg.RedisAddr is set and in-memory otherwise.
func Run(ctx context.Context, serviceName, serviceVersion string, cfg *server.Config) error {
	store, err := template.NewStore(ctx, cfg.RedisAddr)
	if err != nil {
		slog.Error("failed to open template store", "redis", cfg.RedisAddr, "error", err)
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close template store", "error", err)
		}
	}()

	backend := "memory"
	if cfg.RedisAddr != "" {
		backend = "redis"
	}
	slog.Info("template store ready", "backend", backend)

	s := server.New(
		server.WithName(serviceName),
		server.WithVersion(serviceVersion),
		server.WithConfig(cfg),
		server.WithHandler(Routes(nil, store)),
		server.WithReadinessCheck(store.Ping),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// Routes returns the API handlers keyed by ServeMux pattern. A nil registry
// serves the built-in generator modules.
func Routes(registry *generator.Registry, store template.Store) map[string]http.HandlerFunc {
	r := map[string]http.HandlerFunc{
		generator.GeneratePattern: generator.NewHandler(registry).HandleGenerate,
	}
	for pattern, h := range template.NewHandler(store).Routes() {
		r[pattern] = h
	}
	return r
}
