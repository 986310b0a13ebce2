package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-sentiment/internal/config"
	"github.com/Clark-Hu/movie-sentiment/internal/dataset"
	httpserver "github.com/Clark-Hu/movie-sentiment/internal/http"
	"github.com/Clark-Hu/movie-sentiment/internal/logging"
	"github.com/Clark-Hu/movie-sentiment/internal/sentiment"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	sources, err := dataset.SourcesFromConfig(cfg, logger)
	if err != nil {
		logger.Fatal("build dataset sources", zap.Error(err))
	}

	state := dataset.NewState()
	loader := dataset.NewLoader(state, sources, time.Duration(cfg.DatasetTimeoutSecs)*time.Second, logger)
	go func() {
		if _, err := loader.Load(ctx); err != nil {
			logger.Warn("dataset load skipped", zap.Error(err))
		}
	}()

	seed := cfg.DemoSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	resolver := sentiment.NewResolver(state, sentiment.WithRandom(sentiment.NewLockedRand(seed)))

	server := httpserver.New(cfg, state, resolver, logger)
	logger.Info("server starting", zap.String("port", cfg.Port), zap.Int("datasetSources", len(sources)))

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			logger.Error("server error", zap.Error(err))
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("graceful shutdown error", zap.Error(err))
	}
}
