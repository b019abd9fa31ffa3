package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"resto_dashboard/internal/adapters/observability"
	"resto_dashboard/internal/adapters/sources"
	"resto_dashboard/internal/app"
	"resto_dashboard/internal/domain"
	"resto_dashboard/internal/shared"
	mysqlrepo "resto_dashboard/internal/storage/mysql"
)

// ingestor copies the configured file or URL into the reviews table.
func main() {
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SourceKind == shared.SourceMySQL {
		log.Fatal().Msg("ingestor reads a file or URL; SOURCE_KIND=mysql would copy the table onto itself")
	}
	src, err := sources.Open(cfg, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid source configuration")
	}

	log.Info().
		Str("source", src.Name()).
		Int("workers", cfg.Workers).
		Int("batch", cfg.BatchSize).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	ing := app.NewIngestionService(src, repo, nil)

	ds, err := ing.Prepare(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load source failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for _, batch := range app.Batches(ds.Records, cfg.BatchSize) {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Error().Err(err).Msg("ingestion interrupted")
			break
		}

		wg.Add(1)
		go func(batch []domain.Review) {
			defer wg.Done()
			defer sem.Release(1)

			if err := ing.StoreBatch(ctx, ds, batch); err != nil {
				failed.Add(1)
				log.Warn().Err(err).Msg("batch failed")
				return
			}
			log.Debug().Int("rows", len(batch)).Int("first_line", batch[0].Line).Msg("batch ok")
		}(batch)
	}
	wg.Wait()

	rejects := ing.LogRejects(ctx, ds)
	total, err := repo.CountReviews(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("count reviews failed")
	}
	rejectTotal, err := repo.CountRejects(ctx, ds.Source)
	if err != nil {
		log.Warn().Err(err).Msg("count rejects failed")
	}
	log.Info().
		Int("kept", ds.Report.Kept).
		Int("dropped", ds.Report.Dropped()).
		Int("rejects_logged", rejects).
		Int32("failed_batches", failed.Load()).
		Int("stored_total", total).
		Int("rejects_total", rejectTotal).
		Msg("ingestion completed")

	if failed.Load() > 0 || ctx.Err() != nil {
		os.Exit(1)
	}
}
