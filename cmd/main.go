// Package main starts the RentMates API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/rentmates/cmd/httpserver"
	"github.com/go-petr/rentmates/internal/middleware"
	"github.com/go-petr/rentmates/pkg/configpkg"
	"github.com/go-petr/rentmates/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", config.ServerAddress).Msg("RENTMATES API SERVER HAS STARTED")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("cannot start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	if err := server.Close(); err != nil {
		logger.Error().Err(err).Msg("closing connections failed")
	}

	logger.Info().Msg("RENTMATES API SERVER HAS STOPPED")
}
