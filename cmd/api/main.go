package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trixhub/trix-league/internal/app"
	"github.com/trixhub/trix-league/internal/config"
	"github.com/trixhub/trix-league/internal/observability"
	"github.com/trixhub/trix-league/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		os.Exit(1)
	}

	srv, cleanup, err := app.NewHTTPServer(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
		logger.Error("stop pprof server", "error", err)
	}
	if err := stopProfiler(); err != nil {
		logger.Error("stop profiler", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("shutdown tracing", "error", err)
	}
	if err := cleanup(); err != nil {
		logger.Error("close storage", "error", err)
	}

	logger.Info("http server stopped")
}
