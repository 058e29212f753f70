package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"todolist/internal/adapter/database"
	adapterhttp "todolist/internal/adapter/http"
	"todolist/internal/adapter/http/routes"
	"todolist/pkg/config"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()

	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := log.With().Str("service", "todolist").Logger()

	if cfg.Environment == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(cfg.Database, logger)

	if err != nil {
		logger.Fatal().Err(err).Msg("database initialization failed")
	}

	defer db.Close()

	container, err := adapterhttp.NewContainer(db, cfg, logger)

	if err != nil {
		logger.Fatal().Err(err).Msg("wiring failed")
	}

	defer container.Close()

	router := routes.SetupRouter(container, cfg, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}
