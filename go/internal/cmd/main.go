package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := loadEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	market, err := loadMarketConfig(cfg.ConfigPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ConfigPath).Msg("failed to load market config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services, err := setupServices(ctx, cfg, market)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up services")
	}
	defer services.Close()

	if services.Feed != nil {
		go func() {
			if err := services.Feed.Start(ctx); err != nil {
				log.Error().Err(err).Msg("market feed failed")
			}
		}()
	}

	server := setupServer(cfg, services)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("store", cfg.StoreDriver).
			Msg("transfer market API starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	cancel()

	log.Info().Msg("transfer market API stopped")
}
