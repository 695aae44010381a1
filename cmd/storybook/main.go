package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sicko7947/storybook"
	"github.com/sicko7947/storybook/fragment"
	"github.com/sicko7947/storybook/server"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log.Logger = log.Logger.Level(cfg.Level())

	ctx := context.Background()

	backend, closeBackend, err := server.OpenBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("Failed to open backend")
	}
	defer func() {
		if err := closeBackend(); err != nil {
			log.Error().Err(err).Msg("Failed to close backend")
		}
	}()

	stories := storybook.NewStore(
		backend,
		storybook.WithLogger(log.Logger),
		storybook.WithMonotonicIDs(cfg.MonotonicIDs),
	)

	loader := fragment.NewLoader(
		cfg.FragmentBaseURL,
		fragment.WithLogger(log.Logger),
		fragment.WithTimeout(cfg.FragmentTimeout),
	)

	app := server.New(cfg, stories, loader, log.Logger).App()

	log.Info().Str("backend", cfg.Backend).Msg("Story store initialized")

	// Start server in a goroutine
	go func() {
		log.Info().Str("address", cfg.Addr).Msg("Starting HTTP server")
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
