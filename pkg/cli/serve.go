package cli

import (
	"context"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/Arunachalam-140897/DevEngine/pkg/api"
	"github.com/Arunachalam-140897/DevEngine/pkg/server"
)

func serveCmd() *cli.Command {
	cfg := server.DefaultConfig()

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the manifest generation API server",
		Description: `Serves POST /v1/generate/{module} and the /v1/templates endpoints, plus
/health, /ready and /metrics.

# Examples

  devengine serve --port 8080
  devengine serve --redis-addr localhost:6379 --rate-limit 50`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Value: cfg.Address,
				Usage: "Listen address",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   cfg.Port,
				Usage:   "Listen port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.FloatFlag{
				Name:    "rate-limit",
				Value:   float64(cfg.RateLimit),
				Usage:   "Requests per second allowed on API routes",
				Sources: cli.EnvVars("RATE_LIMIT"),
			},
			redisFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg.Address = cmd.String("address")
			cfg.Port = cmd.Int("port")
			if limit := cmd.Float("rate-limit"); limit > 0 {
				cfg.RateLimit = rate.Limit(limit)
				cfg.RateLimitBurst = int(limit * 2)
			}
			cfg.RedisAddr = cmd.String("redis-addr")

			return api.Run(ctx, name+"-api", version, cfg)
		},
	}
}
