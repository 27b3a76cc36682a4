package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"comboplanner/internal/api"
	"comboplanner/internal/app"
	"comboplanner/internal/config"
	"comboplanner/internal/logging"
)

func main() {
	cfg, err := config.Load(getenv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	a, err := app.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize service")
	}

	h := &handler{
		service: a.Service,
		limiter: api.NewRateLimiter(cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window, a.Metrics),
	}
	lambda.Start(h.handle)
}
