package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jask/moneymate/internal/config"
	"github.com/jask/moneymate/internal/logger"
	"github.com/jask/moneymate/internal/secrets"
	"github.com/jask/moneymate/internal/server"
)

const tokenEnv = "MONEYMATE_SERVER_TOKEN"

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", logger.FormatJSON)
		boot.Fatal().Err(err).Msg("Failed to load config")
	}
	log := logger.New(cfg.Log.Level, logger.Format(cfg.Log.Format))

	db, err := server.Open(cfg.Server.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Database connected")

	token := os.Getenv(tokenEnv)
	if s, err := secrets.Default(); err == nil {
		token = s.Resolve(tokenEnv, secrets.SyncToken)
	}
	if token == "" {
		log.Warn().Msg("No sync token configured; any client can read and write")
	}

	app := server.NewApp(server.NewRepo(db), log, token)

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := app.Listen(cfg.Server.Addr); err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
