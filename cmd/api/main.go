package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledgerlink/reconcile-backend/internal/api"
	"github.com/ledgerlink/reconcile-backend/internal/application/service"
	"github.com/ledgerlink/reconcile-backend/internal/domain/matcher"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/config"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/logging"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(*configPath)
	logger := logging.NewComponentLogger(cfg.Observability.Logging, "api")

	repo, err := buildRepository(cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	m := matcher.NewMatcher(matcherConfig(cfg.Reconciler))
	svc := service.NewReconcileService(repo, m, logger)

	server := api.NewServer(api.Config{
		Port:           cfg.API.Port,
		AllowedOrigins: cfg.API.AllowedOrigins,
	}, repo, svc, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildRepository picks the record store by configured driver.
func buildRepository(cfg config.StorageConfig) (storage.Repository, error) {
	if cfg.Driver == "postgres" {
		return storage.NewPostgresStorage(cfg.PostgresDSN)
	}
	return storage.NewStorage(cfg.DatabasePath)
}

// matcherConfig maps file/env settings onto the engine config, keeping
// defaults for anything unset.
func matcherConfig(cfg config.ReconcilerConfig) matcher.Config {
	mc := matcher.DefaultConfig()
	if cfg.OwnCompanyName != "" {
		mc.OwnCompanyName = cfg.OwnCompanyName
	}
	if len(cfg.StopWords) > 0 {
		mc.StopWords = cfg.StopWords
	}
	if cfg.NameThreshold > 0 {
		mc.NameThreshold = cfg.NameThreshold
	}
	if cfg.ScoreThreshold > 0 {
		mc.ScoreThreshold = cfg.ScoreThreshold
	}
	if cfg.DateWindowDays > 0 {
		mc.DateWindowDays = cfg.DateWindowDays
	}
	return mc
}
