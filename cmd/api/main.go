package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	server "campus_market/internal/adapters/http_server"
	"campus_market/internal/adapters/observability"
	"campus_market/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	observability.Serve(cfg.MetricsAddr)

	svc, cleanup, err := shared.NewService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("backend client init failed")
	}
	defer cleanup()

	// http
	srv := server.New(cfg.HandlerTimeout())
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Svc: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
