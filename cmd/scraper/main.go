package main

import (
	"context"
	"database/sql"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"amazon_reviews/internal/adapters/amazon"
	"amazon_reviews/internal/adapters/extractor"
	"amazon_reviews/internal/adapters/observability"
	"amazon_reviews/internal/app"
	"amazon_reviews/internal/shared"
	mysqlrepo "amazon_reviews/internal/storage/mysql"
)

// Batch mode: scrape every URL given on the command line, bounded by
// SCRAPE_WORKERS concurrent pipelines. Each URL is an independent scrape;
// a failure on one does not stop the others.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	urls := os.Args[1:]
	if len(urls) == 0 {
		log.Fatal().Msg("usage: scraper <url> [url ...]")
	}
	log.Info().
		Int("urls", len(urls)).
		Int("workers", cfg.Workers).
		Msg("scraper starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	if err := mysqlrepo.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	if err := mysqlrepo.ValidateSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema check failed")
	}
	log.Info().Msg("db ping ok")

	selectors, err := extractor.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.SelectorsFile).Msg("selectors load failed")
	}

	repo := mysqlrepo.New(db)
	fetcher := amazon.New(cfg.FetchRPS)
	svc := app.NewScrapeService(fetcher, extractor.New(selectors), repo)

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, u := range urls {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(pageURL string) {
			defer wg.Done()
			defer sem.Release(1)

			if _, err := svc.Scrape(ctx, pageURL); err != nil {
				log.Warn().Str("url", pageURL).Err(err).Msg("scrape failed")
				return
			}
			log.Info().Str("url", pageURL).Msg("scrape ok")
		}(u)
	}

	wg.Wait()
	log.Info().Msg("batch completed")
}
