package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/logger"
	"github.com/yigit/placement-portal/internal/pkg/validation"
)

// StudentService manages the authenticated student's own profile
type StudentService struct {
	studentRepo repositories.StudentRepository
	cache       repositories.ReportCache
	validator   *validation.ProfileValidator
	logger      zerolog.Logger
	now         func() time.Time
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo repositories.StudentRepository,
	cache repositories.ReportCache,
	validator *validation.ProfileValidator,
	logger zerolog.Logger,
) *StudentService {
	if cache == nil {
		cache = repositories.NoopReportCache{}
	}
	if validator == nil {
		validator = validation.NewProfileValidator(nil)
	}
	return &StudentService{
		studentRepo: studentRepo,
		cache:       cache,
		validator:   validator,
		logger:      logger,
		now:         time.Now,
	}
}

// GetProfile returns the caller's record
func (s *StudentService) GetProfile(ctx context.Context, email string) (*models.StudentRecord, error) {
	email = repositories.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.ErrTokenInvalid
	}
	return s.studentRepo.FindByEmail(ctx, email)
}

// UpsertProfile normalizes and validates the submission, then creates the
// caller's record or updates the existing one. The body email is ignored.
func (s *StudentService) UpsertProfile(ctx context.Context, email string, req *dto.ProfileRequest) (*models.StudentRecord, error) {
	email = repositories.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.ErrTokenInvalid
	}
	if req == nil {
		return nil, apperrors.NewBadRequestError("profile body is required")
	}

	req.Email = email
	NormalizeProfile(req)

	if fields := s.validator.Validate(req); len(fields) > 0 {
		return nil, apperrors.NewValidationError(fields)
	}
	dob, err := validation.ParseDOB(strings.TrimSpace(req.DOB))
	if err != nil {
		return nil, apperrors.NewValidationError([]apperrors.FieldError{{Field: "dob", Message: "dob must be a valid date (YYYY-MM-DD)"}})
	}

	record, err := s.persist(ctx, email, req, dob)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		logger.FromContext(ctx, &s.logger).Warn().Err(err).Msg("Analytics cache invalidation failed")
	}

	logger.FromContext(ctx, &s.logger).Info().Str("email", email).Str("id", record.ID.Hex()).Msg("Student profile saved")
	return record, nil
}

func (s *StudentService) persist(ctx context.Context, email string, req *dto.ProfileRequest, dob time.Time) (*models.StudentRecord, error) {
	existing, err := s.studentRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return s.update(ctx, existing, req, dob)
	case !errors.Is(err, apperrors.ErrStudentNotFound):
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	now := s.now().UTC()
	record := &models.StudentRecord{Email: email, CreatedAt: now}
	applyProfile(record, req, dob, now)

	err = s.studentRepo.Create(ctx, record)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	// A concurrent request created the record first; update it instead.
	logger.FromContext(ctx, &s.logger).Debug().Str("email", email).Msg("Profile create raced, falling back to update")
	existing, err = s.studentRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}
	return s.update(ctx, existing, req, dob)
}

func (s *StudentService) update(ctx context.Context, record *models.StudentRecord, req *dto.ProfileRequest, dob time.Time) (*models.StudentRecord, error) {
	applyProfile(record, req, dob, s.now().UTC())
	if err := s.studentRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return record, nil
}

// NormalizeProfile applies the placement defaults in place. Placed students
// get a delimited company string split into names and a missing offer count
// derived from it; students who are not placed lose any offers and companies.
func NormalizeProfile(req *dto.ProfileRequest) {
	if !req.IsPlaced {
		zero := 0
		req.NoOfOffers = &zero
		req.CompanyNames = dto.CompanyList{Items: []string{}}
		return
	}

	if req.CompanyNames.Delimited != nil {
		req.CompanyNames = dto.NewCompanyList(dto.SplitCompanyNames(*req.CompanyNames.Delimited)...)
	}
	if req.NoOfOffers == nil || *req.NoOfOffers == 0 {
		n := len(req.CompanyNames.Items)
		req.NoOfOffers = &n
	}
}

// applyProfile copies a validated submission onto the record. Diploma
// fields are left alone unless submitted.
func applyProfile(rec *models.StudentRecord, req *dto.ProfileRequest, dob time.Time, now time.Time) {
	rec.MobileParent = strings.TrimSpace(req.MobileParent)
	rec.DOB = dob
	rec.TenthPercent = *req.TenthPercent
	rec.TwelfthPercent = *req.TwelfthPercent
	rec.CGPA = *req.CGPA
	rec.TenthSchool = strings.TrimSpace(req.TenthSchool)
	rec.TenthYear = *req.TenthYear
	rec.TwelfthSchool = strings.TrimSpace(req.TwelfthSchool)
	rec.TwelfthYear = *req.TwelfthYear
	rec.TwelfthCutoff = *req.TwelfthCutoff

	if req.DiplomaPercent != nil {
		v := *req.DiplomaPercent
		rec.DiplomaPercent = &v
	}
	if req.DiplomaCollege != nil {
		rec.DiplomaCollege = strings.TrimSpace(*req.DiplomaCollege)
	}
	if req.DiplomaYear != nil {
		v := *req.DiplomaYear
		rec.DiplomaYear = &v
	}

	rec.CommunicationAddress = strings.TrimSpace(req.CommunicationAddress)
	rec.PermanentAddress = strings.TrimSpace(req.PermanentAddress)
	rec.NativePlace = strings.TrimSpace(req.NativePlace)
	rec.District = strings.TrimSpace(req.District)
	rec.ResumeLink = strings.TrimSpace(req.ResumeLink)
	rec.Department = models.Department(req.Department)

	rec.IsPlaced = bool(req.IsPlaced)
	rec.NoOfOffers = *req.NoOfOffers
	rec.CompanyNames = make([]string, 0, len(req.CompanyNames.Items))
	for _, name := range req.CompanyNames.Items {
		rec.CompanyNames = append(rec.CompanyNames, strings.TrimSpace(name))
	}

	rec.UpdatedAt = now
}
