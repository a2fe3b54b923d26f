// Command server runs the ReserveAqui web gateway: the session-holding HTTP
// front for the external reservation API.
//
// @title        ReserveAqui Web Gateway
// @version      1.0
// @description  Session-holding web gateway for the ReserveAqui reservation API.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/reserveaqui/webgateway/internal/config"
	"github.com/reserveaqui/webgateway/internal/session"
	"github.com/reserveaqui/webgateway/internal/web"
	"github.com/reserveaqui/webgateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := session.Connect(ctx, session.ConnectConfig{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("session store unreachable")
	}
	defer rdb.Close()

	e := web.NewRouter(cfg, rdb, log)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("upstream", cfg.UpstreamBaseURL).
			Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
