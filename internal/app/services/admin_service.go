package services

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/export"
	"github.com/yigit/placement-portal/internal/pkg/logger"
)

// AdminService handles administrator access to student records
type AdminService struct {
	studentRepo repositories.StudentRepository
	formatter   *export.Formatter
	logger      zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	studentRepo repositories.StudentRepository,
	formatter *export.Formatter,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		studentRepo: studentRepo,
		formatter:   formatter,
		logger:      logger,
	}
}

// ListStudents returns the records matching filter, most recently updated first
func (s *AdminService) ListStudents(ctx context.Context, filter models.StudentFilter) ([]*models.StudentRecord, error) {
	records, err := s.studentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return records, nil
}

// GetStudent returns one record. Unknown and malformed ids are both not found.
func (s *AdminService) GetStudent(ctx context.Context, id string) (*models.StudentRecord, error) {
	return s.studentRepo.FindByID(ctx, id)
}

// ExportStudents renders the filtered records to w. The store is read in
// full before anything is written, so a failed read leaves w untouched.
func (s *AdminService) ExportStudents(ctx context.Context, filter models.StudentFilter, format export.Format, w io.Writer) error {
	records, err := s.ListStudents(ctx, filter)
	if err != nil {
		return err
	}

	if err := export.Write(w, format, s.formatter.Rows(records)); err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}

	logger.FromContext(ctx, &s.logger).Info().
		Int("count", len(records)).
		Str("format", string(format)).
		Msg("Student records exported")
	return nil
}
