package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/bootstrap"
	"github.com/yigit/placement-portal/internal/config"
	"github.com/yigit/placement-portal/internal/pkg/logger"
	"github.com/yigit/placement-portal/internal/seed"
)

// Fills the student store with sample records and student accounts.
// SEED_COUNT, SEED_RESET and SEED_RANDOM tune the run.
func main() {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, lgr); err != nil {
		logger.Error().Err(err).Msg("Seeding failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Mongo.Driver != "mongo" {
		return fmt.Errorf("seeding needs the mongo store driver, got %q", cfg.Mongo.Driver)
	}

	res := &bootstrap.Resources{}
	defer func() { _ = res.Close(context.Background(), lgr) }()

	var err error
	if res.Postgres, err = bootstrap.SetupDatabase(ctx, cfg, lgr); err != nil {
		return err
	}
	if err := bootstrap.SetupStores(ctx, cfg, lgr, res); err != nil {
		return err
	}

	deps, err := bootstrap.BuildDependencies(cfg, res, lgr)
	if err != nil {
		return err
	}
	bootstrap.SeedDefaults(ctx, cfg, deps, lgr)

	opts := seed.Options{
		Count:           config.GetEnvAsInt("SEED_COUNT", 50),
		Reset:           config.GetEnvAsBool("SEED_RESET", false),
		StudentPassword: cfg.Auth.StudentPassword,
		Seed:            uint64(config.GetEnvAsInt("SEED_RANDOM", int(time.Now().UnixNano()))),
	}

	n, err := seed.SeedStudents(ctx, deps.Repos.StudentRepository, deps.Repos.UserRepository, opts, lgr)
	if err != nil {
		return fmt.Errorf("seeded %d students with errors: %w", n, err)
	}

	// Cached analytics no longer match the store.
	deps.AnalyticsService.Invalidate(ctx)
	lgr.Info().Int("created", n).Msg("Database seeded successfully")
	return nil
}
