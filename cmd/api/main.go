package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "resto_dashboard/internal/adapters/http_server"
	"resto_dashboard/internal/adapters/observability"
	redisad "resto_dashboard/internal/adapters/redis"
	"resto_dashboard/internal/adapters/sources"
	"resto_dashboard/internal/adapters/watch"
	"resto_dashboard/internal/app"
	"resto_dashboard/internal/domain"
	"resto_dashboard/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, observability.MetricsHandler(reg))

	var db *sql.DB
	if cfg.SourceKind == shared.SourceMySQL {
		var err error
		if db, err = sql.Open("mysql", cfg.MySQLDSN); err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		defer db.Close()
		log.Info().Msg("database connection ok")
	}

	src, err := sources.Open(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid source configuration")
	}

	// cache is optional; the dashboard is computed in memory without it
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; continuing, cache errors will be logged")
		}
		defer rc.Close()
		cache = rc
	}

	q := app.NewQueryService(src, nil, cache, cfg.CacheTTL)
	// warm up; a failure here is retried on the first request
	if _, err := q.Dataset(ctx); err != nil {
		log.Error().Err(err).Msg("initial dataset load failed")
	}

	if path, ok := sources.Watchable(src); ok && cfg.SourceWatch {
		w, err := watch.New(path, q, watch.DefaultDebounce)
		if err != nil {
			log.Warn().Err(err).Msg("source watcher disabled")
		} else {
			go w.Run(ctx)
		}
	}

	// http
	proxies, err := server.ParseProxies(cfg.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid TRUSTED_PROXIES")
	}
	srv := server.New(proxies...)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Export: server.NewIPLimiter(cfg.ExportRPS, 2)})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("source", src.Name()).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
