package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/placement-portal/internal/bootstrap"
	"github.com/yigit/placement-portal/internal/config"
)

// Server owns the HTTP listener and the stores behind it.
type Server struct {
	config    *config.Config
	handler   http.Handler
	resources *bootstrap.Resources
	logger    zerolog.Logger
	http      *http.Server
}

// NewServer loads configuration, connects the stores and builds the router.
// Anything opened before a failure is closed again.
func NewServer(ctx context.Context) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	res := &bootstrap.Resources{}
	res.Postgres, err = bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if err := bootstrap.SetupStores(ctx, cfg, lgr, res); err != nil {
		_ = res.Close(context.Background(), lgr)
		return nil, fmt.Errorf("failed to setup stores: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, res, lgr)
	if err != nil {
		_ = res.Close(context.Background(), lgr)
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	bootstrap.SeedDefaults(ctx, cfg, deps, lgr)

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config:    cfg,
		handler:   bootstrap.WrapCORS(cfg, router),
		resources: res,
		logger:    lgr,
	}, nil
}

// Run serves until ctx is cancelled or the listener fails, then drains
// in-flight requests and releases the stores.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              ":" + s.config.Server.Port,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// exports of the whole collection can take a while to stream
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("Placement API listening")
		listenErr <- s.http.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = s.resources.Close(context.Background(), s.logger)
			return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
		}
	case <-ctx.Done():
		s.logger.Info().Err(context.Cause(ctx)).Msg("Stop requested, draining connections")
	}

	return s.Shutdown(context.Background())
}

// Shutdown stops accepting requests and closes every backing store. All
// failures are reported together.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if err := s.resources.Close(ctx, s.logger); err != nil {
		errs = append(errs, fmt.Errorf("close stores: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Error().Err(err).Msg("Shutdown finished with errors")
		return err
	}
	s.logger.Info().Msg("Shutdown complete")
	return nil
}
