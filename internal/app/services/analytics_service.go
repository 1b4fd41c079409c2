package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// AnalyticsService computes the placement report from the student store
type AnalyticsService struct {
	studentRepo repositories.StudentRepository
	cache       repositories.ReportCache
	logger      zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	studentRepo repositories.StudentRepository,
	cache repositories.ReportCache,
	logger zerolog.Logger,
) *AnalyticsService {
	if cache == nil {
		cache = repositories.NoopReportCache{}
	}
	return &AnalyticsService{
		studentRepo: studentRepo,
		cache:       cache,
		logger:      logger,
	}
}

// GetReport returns the cached report when present, otherwise runs the
// department, company and overall reductions concurrently. Any failing read
// fails the whole report. The result is cached under the generation read
// before the store was queried, so an upsert finishing mid-report leaves
// the stored result unreachable.
func (s *AnalyticsService) GetReport(ctx context.Context) (*models.AnalyticsReport, error) {
	cached, gen, err := s.cache.Get(ctx)
	cacheable := err == nil
	if err != nil {
		logger.FromContext(ctx, &s.logger).Warn().Err(err).Msg("Analytics cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	placed := true
	report := &models.AnalyticsReport{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.studentRepo.List(gctx, models.StudentFilter{})
		if err != nil {
			return fmt.Errorf("department stats: %w", err)
		}
		report.DepartmentStats = DepartmentStats(records)
		return nil
	})
	g.Go(func() error {
		records, err := s.studentRepo.List(gctx, models.StudentFilter{Placed: &placed})
		if err != nil {
			return fmt.Errorf("company stats: %w", err)
		}
		report.CompanyStats = CompanyStats(records)
		return nil
	})
	g.Go(func() error {
		records, err := s.studentRepo.List(gctx, models.StudentFilter{})
		if err != nil {
			return fmt.Errorf("overall stats: %w", err)
		}
		report.OverallStats = OverallStats(records)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !cacheable {
		return report, nil
	}
	if err := s.cache.Set(ctx, gen, report); err != nil {
		logger.FromContext(ctx, &s.logger).Warn().Err(err).Msg("Analytics cache write failed")
	}
	return report, nil
}

// Invalidate starts a new cache generation. Failures are logged only.
func (s *AnalyticsService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.FromContext(ctx, &s.logger).Warn().Err(err).Msg("Analytics cache invalidation failed")
	}
}
