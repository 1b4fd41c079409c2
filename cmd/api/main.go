package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigit/placement-portal/internal/pkg/logger"
	"github.com/yigit/placement-portal/internal/server"
)

// @title Placement Portal API
// @version 1.0
// @description Student placement records: profiles, admin listing, analytics and export

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	if err := run(); err != nil {
		logger.Error().Err(err).Msg("Placement API stopped with an error")
		os.Exit(1)
	}
	logger.Info().Msg("Application finished gracefully.")
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}
	return srv.Run(ctx)
}
