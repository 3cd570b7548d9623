package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"cuy-farm/internal/infrastructure/config"
	"cuy-farm/internal/infrastructure/db"
	httpapi "cuy-farm/internal/interface/http"
)

func main() {
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		boot.Fatal().Err(err).Msg("load config failed")
	}

	log := newLogger(cfg.Log)
	log.Info().Str("addr", cfg.HTTP.Addr).Msg("configuration loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		log.Warn().Err(err).Msg("database connection failed, falling back to in-memory store")
		pool = nil
	} else if pool == nil {
		log.Info().Msg("no DB_DSN provided; running with in-memory store only")
	} else {
		defer pool.Close()
		log.Info().Msg("database connected")
	}

	apiServer := httpapi.NewServer(cfg, pool, log)
	log.Info().Str("addr", cfg.HTTP.Addr).Msg("starting HTTP server")
	if err := http.ListenAndServe(cfg.HTTP.Addr, apiServer.Handler()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out = os.Stderr
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if cfg.Pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out})
	}
	return logger
}
