package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookstand/store-ui-api/internal/bootstrap"
	httpx "github.com/bookstand/store-ui-api/internal/http"
	"github.com/bookstand/store-ui-api/internal/service"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting store-ui-api",
		"addr", cfg.HTTP.Addr,
		"auth_mode", cfg.Auth.Mode,
		"store_api", cfg.Upstream.BaseURL,
		"dev", cfg.IsDev)

	redisClient, err := bootstrap.ConnectRedis(bootstrap.RedisOptions{
		Redis:  cfg.Redis,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	storeClient, err := bootstrap.NewStoreAPIClient(cfg.Upstream, logger)
	if err != nil {
		return err
	}

	authSvc, err := bootstrap.BuildAuthService(bootstrap.AuthOptions{
		Auth:        cfg.Auth,
		Session:     cfg.Session,
		RedisClient: redisClient,
		Directory:   storeClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	insightsSvc, err := service.NewInsightsService(service.InsightsServiceOptions{
		Catalog: storeClient,
		Orders:  storeClient,
		Stock:   storeClient,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	server := bootstrap.StartHTTPServer(&bootstrap.HTTPServerConfig{
		Config: &cfg,
		Logger: logger,
		Services: httpx.RouterServices{
			Auth:         authSvc,
			Insights:     insightsSvc,
			Catalog:      storeClient,
			Orders:       storeClient,
			Stock:        storeClient,
			CookieDomain: cfg.HTTP.CookieDomain,
			Logger:       logger,
		},
	})

	// Block until a shutdown signal arrives.
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	return bootstrap.ShutdownHTTPServer(ctx, server, logger)
}
