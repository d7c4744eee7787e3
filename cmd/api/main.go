package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"amazon_reviews/internal/adapters/amazon"
	"amazon_reviews/internal/adapters/extractor"
	server "amazon_reviews/internal/adapters/http_server"
	"amazon_reviews/internal/adapters/observability"
	"amazon_reviews/internal/app"
	"amazon_reviews/internal/shared"
	mysqlrepo "amazon_reviews/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
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
	if err := mysqlrepo.ValidateSchema(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("schema check failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	selectors, err := extractor.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.SelectorsFile).Msg("selectors load failed")
	}
	repo := mysqlrepo.New(db)
	fetcher := amazon.New(cfg.FetchRPS)
	svc := app.NewScrapeService(fetcher, extractor.New(selectors), repo)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Scraper: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
