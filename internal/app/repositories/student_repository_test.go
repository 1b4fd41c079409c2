package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStudentFilterToBSON_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, StudentFilterToBSON(models.StudentFilter{}))
}

func TestStudentFilterToBSON_AllConstraints(t *testing.T) {
	q := StudentFilterToBSON(models.NewStudentFilter("false", "ECE", "a.b"))

	assert.Equal(t, false, q["isPlaced"])
	assert.Equal(t, "ECE", q["department"])

	or, ok := q["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 4)

	want := primitive.Regex{Pattern: `a\.b`, Options: "i"}
	for i, field := range []string{"email", "district", "nativePlace", "companyNames"} {
		clause := or[i].(bson.M)
		assert.Equal(t, want, clause[field], field)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "arun@college.edu", NormalizeEmail("  Arun@College.EDU "))
}

func TestMemoryStudentRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStudentRepository()

	rec := &models.StudentRecord{Email: "arun@college.edu", Department: models.DepartmentCSE}
	require.NoError(t, repo.Create(ctx, rec))
	assert.False(t, rec.ID.IsZero())

	err := repo.Create(ctx, &models.StudentRecord{Email: "arun@college.edu"})
	assert.True(t, errors.Is(err, apperrors.ErrResourceAlreadyExists))

	got, err := repo.FindByEmail(ctx, " ARUN@college.edu")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	got, err = repo.FindByID(ctx, rec.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "arun@college.edu", got.Email)

	got.District = "Salem"
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.FindByEmail(ctx, "arun@college.edu")
	require.NoError(t, err)
	assert.Equal(t, "Salem", again.District)
	assert.Equal(t, rec.ID, again.ID)

	err = repo.Update(ctx, &models.StudentRecord{Email: "ghost@college.edu"})
	assert.True(t, errors.Is(err, apperrors.ErrStudentNotFound))
}

func TestMemoryStudentRepository_FindByIDMalformed(t *testing.T) {
	repo := NewMemoryStudentRepository()
	_, err := repo.FindByID(context.Background(), "not-an-object-id")
	assert.True(t, errors.Is(err, apperrors.ErrStudentNotFound))

	_, err = repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, errors.Is(err, apperrors.ErrStudentNotFound))
}

func TestMemoryStudentRepository_ListOrderAndFilter(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryStudentRepository(
		&models.StudentRecord{Email: "old@college.edu", UpdatedAt: base, IsPlaced: true, CompanyNames: []string{"TCS"}, NoOfOffers: 1},
		&models.StudentRecord{Email: "new@college.edu", UpdatedAt: base.Add(time.Hour)},
		&models.StudentRecord{Email: "mid@college.edu", UpdatedAt: base.Add(time.Minute), IsPlaced: true, CompanyNames: []string{"Wipro"}, NoOfOffers: 1},
	)

	all, err := repo.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new@college.edu", "mid@college.edu", "old@college.edu"},
		[]string{all[0].Email, all[1].Email, all[2].Email})

	placed, err := repo.List(context.Background(), models.NewStudentFilter("true", "", "tcs"))
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.Equal(t, "old@college.edu", placed[0].Email)

	none, err := repo.List(context.Background(), models.NewStudentFilter("", "", "zzz"))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryStudentRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryStudentRepository(&models.StudentRecord{Email: "a@college.edu", CompanyNames: []string{"TCS"}})
	got, err := repo.FindByEmail(context.Background(), "a@college.edu")
	require.NoError(t, err)
	got.CompanyNames[0] = "HCL"

	again, err := repo.FindByEmail(context.Background(), "a@college.edu")
	require.NoError(t, err)
	assert.Equal(t, "TCS", again.CompanyNames[0])
}

func TestMemoryStudentRepository_DeleteAll(t *testing.T) {
	repo := NewMemoryStudentRepository(&models.StudentRecord{Email: "a@college.edu"}, &models.StudentRecord{Email: "b@college.edu"})
	n, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := repo.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryStudentRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStudentRepository().List(ctx, models.StudentFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNoopReportCache(t *testing.T) {
	var cache ReportCache = NoopReportCache{}
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, 0, &models.AnalyticsReport{}))
	got, gen, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, gen)
	assert.NoError(t, cache.Invalidate(ctx))
}

func TestReportKey_PerGeneration(t *testing.T) {
	assert.Equal(t, "placement:analytics:report:0", reportKey(0))
	assert.Equal(t, "placement:analytics:report:17", reportKey(17))
}

func TestNewRepositories_FallsBackToMemory(t *testing.T) {
	repos := NewRepositories(Sources{})
	_, ok := repos.StudentRepository.(*MemoryStudentRepository)
	assert.True(t, ok)
	_, ok = repos.ReportCache.(NoopReportCache)
	assert.True(t, ok)
}
