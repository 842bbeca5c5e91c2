// Command zombie-survival-api serves simulations over HTTP and websocket.
//
// Configuration comes from ZS_* environment variables, see config.Server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Thokas/zombie-survival/internal/config"
	zsotel "github.com/Thokas/zombie-survival/internal/otel"
	"github.com/Thokas/zombie-survival/internal/server"
	"github.com/Thokas/zombie-survival/internal/stats"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		config.Exitf("zombie-survival-api: %v", err)
	}
	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel, "api")
	if err != nil {
		config.Exitf("zombie-survival-api: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := zsotel.Setup(ctx, "zombie-survival-api", cfg.OTelEndpoint)
	if err != nil {
		logger.Fatal("setup tracing", "err", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("tracing shutdown", "err", err)
		}
	}()

	store := stats.NewStore(cfg.HistorySize)
	if err := store.PersistTo(cfg.ResultsDir); err != nil {
		logger.Fatal("results dir", "err", err)
	}

	logger.Info("starting", "version", buildVersion, "built", buildTime,
		"port", cfg.Port, "history", cfg.HistorySize, "max_population", cfg.MaxPopulation)
	if err := server.New(cfg, store, logger).ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "err", err)
		stop()
		os.Exit(1)
	}
}
