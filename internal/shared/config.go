package shared

import (
	"github.com/caarlos0/env/v8"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string `env:"APP_ENV" envDefault:"prod"`
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`
	MySQLDSN      string `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/scraper?parseTime=true&charset=utf8mb4,utf8&loc=UTC"`
	SelectorsFile string `env:"SELECTORS_FILE" envDefault:"selectors.yml"`
	FetchRPS      int    `env:"FETCH_RPS" envDefault:"1"`
	Workers       int    `env:"SCRAPE_WORKERS" envDefault:"4"`
}

func Load() Config {
	var c Config
	if err := env.Parse(&c); err != nil {
		log.Fatal().Err(err).Msg("config parse failed")
	}
	return c
}
