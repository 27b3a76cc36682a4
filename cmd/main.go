package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"comboplanner/internal/api"
	"comboplanner/internal/app"
	"comboplanner/internal/config"
	"comboplanner/internal/evaluation"
	"comboplanner/internal/logging"
	"comboplanner/internal/playground"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	seed        = flag.Bool("seed", false, "Write the JSON menu into the database and exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize service")
	}
	defer a.Close()

	if *seed {
		if err := a.Seed(ctx); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed catalog")
		}
		return
	}

	if err := run(ctx, a); err != nil {
		logging.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App) error {
	cfg := a.Config
	gin.SetMode(gin.ReleaseMode)

	opts := api.Options{
		Service:    a.Service,
		SeedSource: a.FileCatalog,
		Limiter:    api.NewRateLimiter(cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window, a.Metrics),
		JWTSecret:  cfg.Auth.JWTSecret,
	}
	if a.Store != nil {
		opts.Store = a.Store
	}
	comboAPI := api.NewComboAPI(opts)

	servers := []*namedServer{
		{name: "api", srv: &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.Port), Handler: comboAPI.Router}},
	}
	if cfg.Server.MetricsPort > 0 {
		servers = append(servers, &namedServer{name: "metrics", srv: metricsServer(a, cfg.Server.MetricsPort)})
	}
	if cfg.Playground.Enabled && cfg.Playground.Port > 0 {
		pg := playground.NewPlaygroundServer(playground.Options{
			Service:    a.Service,
			Registry:   a.Registry,
			Evaluator:  evaluation.NewEvaluator(a.Service, a.Monitor, evaluation.WithTuning(a.Tuning)),
			Monitor:    a.Monitor,
			Strategies: a.Strategies,
			MaxTokens:  cfg.LLM.MaxTokens,
		})
		servers = append(servers, &namedServer{name: "playground", srv: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Playground.Port),
			Handler: pg.Router(),
		}})
	}

	errc := make(chan error, len(servers))
	for _, s := range servers {
		go func(s *namedServer) {
			logging.Info().Str("server", s.name).Str("addr", s.srv.Addr).Msg("Starting server")
			if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("%s server: %w", s.name, err)
			}
		}(s)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutting down servers...")
	case runErr = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, s := range servers {
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			logging.Warn().Err(err).Str("server", s.name).Msg("shutdown error")
		}
	}
	return runErr
}

type namedServer struct {
	name string
	srv  *http.Server
}

func metricsServer(a *app.App, port int) *http.Server {
	metricsRouter := gin.New()
	metricsRouter.GET("/metrics", gin.WrapH(a.Metrics.Handler()))
	metricsRouter.GET("/debug/monitor", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.Monitor.GetMetrics())
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}
}
