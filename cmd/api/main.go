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

	appanalysis "github.com/bryanwahyu/code-doctor/internal/application/analysis"
	"github.com/bryanwahyu/code-doctor/internal/config"
	infraai "github.com/bryanwahyu/code-doctor/internal/infra/ai"
	"github.com/bryanwahyu/code-doctor/internal/infra/httpserver"
	"github.com/bryanwahyu/code-doctor/internal/logging"
	"github.com/bryanwahyu/code-doctor/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// init model client
	client, err := infraai.New(ctx, cfg.AI)
	if err != nil {
		logger.Fatal("model client init error", zap.Error(err))
	}

	// init service
	svc := appanalysis.NewService(client, logger)
	if cfg.AI.Timeout > 0 {
		svc.Timeout = cfg.AI.Timeout
	}

	// init router
	handler := httpserver.NewRouter(svc, middleware.NewMetrics(), logger, httpserver.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		Model:          cfg.AI.Model,
		APIKeySet:      cfg.AI.APIKey != "",
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// run server
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("provider", client.Name()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
