package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/validation"
)

func newStudentService(repo repositories.StudentRepository, cache repositories.ReportCache) *StudentService {
	svc := NewStudentService(repo, cache, validation.NewProfileValidator(func() time.Time { return fixedNow }), zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestNormalizeProfile_SplitsDelimitedCompanies(t *testing.T) {
	req := validProfile()
	req.IsPlaced = true
	req.CompanyNames = dto.NewDelimitedCompanyList("TCS, Infosys")

	NormalizeProfile(req)

	assert.Equal(t, []string{"TCS", "Infosys"}, req.CompanyNames.Items)
	assert.Nil(t, req.CompanyNames.Delimited)
	require.NotNil(t, req.NoOfOffers)
	assert.Equal(t, 2, *req.NoOfOffers)
}

func TestNormalizeProfile_KeepsExplicitOffers(t *testing.T) {
	req := validProfile()
	req.IsPlaced = true
	req.CompanyNames = dto.NewCompanyList("TCS")
	req.NoOfOffers = iptr(3)

	NormalizeProfile(req)
	assert.Equal(t, 3, *req.NoOfOffers)
}

func TestNormalizeProfile_NotPlacedDiscardsPlacement(t *testing.T) {
	req := validProfile()
	req.IsPlaced = false
	req.CompanyNames = dto.NewCompanyList("TCS")
	req.NoOfOffers = iptr(3)

	NormalizeProfile(req)
	assert.Equal(t, 0, *req.NoOfOffers)
	assert.NotNil(t, req.CompanyNames.Items)
	assert.Empty(t, req.CompanyNames.Items)
}

func TestUpsertProfile_CreatesPlacedRecord(t *testing.T) {
	repo := repositories.NewMemoryStudentRepository()
	cache := &recordingCache{reports: map[int64]*models.AnalyticsReport{0: {}}}
	svc := newStudentService(repo, cache)

	req := validProfile()
	req.Email = "someone-else@college.edu"
	req.IsPlaced = true
	req.CompanyNames = dto.NewDelimitedCompanyList("TCS, Infosys")

	rec, err := svc.UpsertProfile(context.Background(), " Arun@College.edu ", req)
	require.NoError(t, err)

	assert.Equal(t, "arun@college.edu", rec.Email)
	assert.Equal(t, []string{"TCS", "Infosys"}, rec.CompanyNames)
	assert.Equal(t, 2, rec.NoOfOffers)
	assert.True(t, rec.IsPlaced)
	assert.Equal(t, fixedNow, rec.CreatedAt)
	assert.Equal(t, fixedNow, rec.UpdatedAt)
	assert.Equal(t, time.Date(2003, 5, 14, 0, 0, 0, 0, time.UTC), rec.DOB)
	assert.Equal(t, 1, cache.invalidated)
	cached, _, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cached)

	stored, err := repo.FindByEmail(context.Background(), "arun@college.edu")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, stored.ID)

	_, err = repo.FindByEmail(context.Background(), "someone-else@college.edu")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUpsertProfile_NotPlacedDiscardsSubmittedCompanies(t *testing.T) {
	svc := newStudentService(repositories.NewMemoryStudentRepository(), nil)

	req := validProfile()
	req.IsPlaced = false
	req.CompanyNames = dto.NewCompanyList("TCS")
	req.NoOfOffers = iptr(3)

	rec, err := svc.UpsertProfile(context.Background(), "b@college.edu", req)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.NoOfOffers)
	assert.Equal(t, []string{}, rec.CompanyNames)
}

func TestUpsertProfile_UpdatesExistingRecord(t *testing.T) {
	created := fixedNow.Add(-48 * time.Hour)
	diploma := 77.0
	repo := repositories.NewMemoryStudentRepository(&models.StudentRecord{
		Email:          "arun@college.edu",
		Department:     models.DepartmentECE,
		DiplomaPercent: &diploma,
		DiplomaCollege: "PSG Polytechnic",
		CreatedAt:      created,
		UpdatedAt:      created,
	})
	svc := newStudentService(repo, nil)

	before, err := repo.FindByEmail(context.Background(), "arun@college.edu")
	require.NoError(t, err)

	rec, err := svc.UpsertProfile(context.Background(), "arun@college.edu", validProfile())
	require.NoError(t, err)

	assert.Equal(t, before.ID, rec.ID)
	assert.Equal(t, created, rec.CreatedAt)
	assert.Equal(t, fixedNow, rec.UpdatedAt)
	assert.Equal(t, models.DepartmentCSE, rec.Department)
	// Diploma fields were not submitted and survive.
	require.NotNil(t, rec.DiplomaPercent)
	assert.Equal(t, 77.0, *rec.DiplomaPercent)
	assert.Equal(t, "PSG Polytechnic", rec.DiplomaCollege)

	all, err := repo.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertProfile_ValidationFailureDoesNotWrite(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentService(repo, nil)

	req := validProfile()
	req.CGPA = fptr(11)
	req.Department = "ARCH"
	req.IsPlaced = true

	rec, err := svc.UpsertProfile(context.Background(), "a@college.edu", req)
	assert.Nil(t, rec)

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.ElementsMatch(t, []string{"cgpa", "department", "companyNames", "noOfOffers"}, vErr.FieldNames())

	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpsertProfile_DuplicateCreateFallsBackToUpdate(t *testing.T) {
	existing := &models.StudentRecord{Email: "a@college.edu", CreatedAt: fixedNow.Add(-time.Hour)}

	repo := &mockStudentRepo{}
	repo.On("FindByEmail", mock.Anything, "a@college.edu").Return(nil, apperrors.ErrStudentNotFound).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.ErrResourceAlreadyExists).Once()
	repo.On("FindByEmail", mock.Anything, "a@college.edu").Return(existing, nil).Once()
	repo.On("Update", mock.Anything, existing).Return(nil).Once()

	rec, err := newStudentService(repo, nil).UpsertProfile(context.Background(), "a@college.edu", validProfile())
	require.NoError(t, err)
	assert.Same(t, existing, rec)
	assert.Equal(t, fixedNow, rec.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestUpsertProfile_StoreFailureIsWrapped(t *testing.T) {
	boom := errors.New("socket closed")
	repo := &mockStudentRepo{}
	repo.On("FindByEmail", mock.Anything, "a@college.edu").Return(nil, boom)

	cache := &recordingCache{}
	_, err := newStudentService(repo, cache).UpsertProfile(context.Background(), "a@college.edu", validProfile())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cache.invalidated)
}

func TestGetProfile(t *testing.T) {
	repo := repositories.NewMemoryStudentRepository(&models.StudentRecord{Email: "a@college.edu", District: "Madurai"})
	svc := newStudentService(repo, nil)

	rec, err := svc.GetProfile(context.Background(), "A@college.edu")
	require.NoError(t, err)
	assert.Equal(t, "Madurai", rec.District)

	_, err = svc.GetProfile(context.Background(), "nobody@college.edu")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = svc.GetProfile(context.Background(), " ")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
